//go:build unix

package sysmon

import (
	"time"

	"golang.org/x/sys/unix"
)

func sample() (CPUTimes, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return CPUTimes{}, false
	}
	return CPUTimes{
		User:   time.Duration(ru.Utime.Nano()),
		System: time.Duration(ru.Stime.Nano()),
	}, true
}
