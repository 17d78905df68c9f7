//go:build !unix

package sysmon

func sample() (CPUTimes, bool) { return CPUTimes{}, false }
