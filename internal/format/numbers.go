package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal integer
// string. A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 1)
	b.WriteString(sign)
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatCount is FormatNumberString for an int.
func FormatCount(n int) string {
	return FormatNumberString(strconv.Itoa(n))
}

// FormatBytes renders a signed byte count with a binary unit suffix.
func FormatBytes(b int64) string {
	const unit = 1024
	sign := ""
	if b < 0 {
		sign, b = "-", -b
	}
	if b < unit {
		return fmt.Sprintf("%s%d B", sign, b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%s%.1f %ciB", sign, float64(b)/float64(div), "KMGTPE"[exp])
}
