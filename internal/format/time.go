package format

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerMonth  = 30 * secondsPerDay
	secondsPerYear   = 365 * secondsPerDay
)

// Duration formats a number of seconds as "45s", "1m 5s", "2h 3m" or "1d 2h".
func Duration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%ds", seconds)
	case seconds < secondsPerHour:
		return fmt.Sprintf("%dm %ds", seconds/secondsPerMinute, seconds%secondsPerMinute)
	case seconds < secondsPerDay:
		return fmt.Sprintf("%dh %dm", seconds/secondsPerHour, (seconds%secondsPerHour)/secondsPerMinute)
	default:
		return fmt.Sprintf("%dd %dh", seconds/secondsPerDay, (seconds%secondsPerDay)/secondsPerHour)
	}
}

// RelativeTime formats a unix timestamp relative to now ("3 hours ago").
func RelativeTime(unix int64, now time.Time) string {
	diff := now.Unix() - unix
	switch {
	case diff < secondsPerMinute:
		return "just now"
	case diff < secondsPerHour:
		return plural(diff/secondsPerMinute, "minute") + " ago"
	case diff < secondsPerDay:
		return plural(diff/secondsPerHour, "hour") + " ago"
	case diff < secondsPerMonth:
		return plural(diff/secondsPerDay, "day") + " ago"
	case diff < secondsPerYear:
		return plural(diff/secondsPerMonth, "month") + " ago"
	default:
		return plural(diff/secondsPerYear, "year") + " ago"
	}
}

// ShortRelative is the compact form used in table cells ("5m ago").
func ShortRelative(t, now time.Time) string {
	diff := int64(now.Sub(t).Seconds())
	switch {
	case diff < secondsPerMinute:
		return "Just now"
	case diff < secondsPerHour:
		return fmt.Sprintf("%dm ago", diff/secondsPerMinute)
	case diff < secondsPerDay:
		return fmt.Sprintf("%dh ago", diff/secondsPerHour)
	case diff < secondsPerMonth:
		return fmt.Sprintf("%dd ago", diff/secondsPerDay)
	case diff < secondsPerYear:
		return fmt.Sprintf("%dmo ago", diff/secondsPerMonth)
	default:
		return fmt.Sprintf("%dy ago", diff/secondsPerYear)
	}
}

// Timestamp formats a unix timestamp in local time.
func Timestamp(unix int64) string {
	return time.Unix(unix, 0).Local().Format("2006-01-02 15:04:05")
}

// Uptime formats the time elapsed since a unix creation timestamp.
func Uptime(created int64, now time.Time) string {
	return Duration(now.Unix() - created)
}

// Since renders an RFC3339 timestamp the way `docker ps` renders durations
// ("About an hour"). Empty or unparsable input yields "-".
func Since(rfc3339 string, now time.Time) string {
	t, err := time.Parse(time.RFC3339Nano, rfc3339)
	if err != nil || t.IsZero() || t.Year() < 1970 {
		return "-"
	}
	return units.HumanDuration(now.Sub(t))
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
