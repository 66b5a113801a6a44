package common

import (
	"fmt"
	"time"
)

// FormatUptime formats a duration as days, hours, minutes and seconds
func FormatUptime(d time.Duration) string {
	total := int64(d.Seconds())

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%dd, %dh, %dm, %ds", days, hours, minutes, seconds)
}

// Pluralize appends an "s" to the noun unless count is exactly one
func Pluralize(count int, noun string) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
