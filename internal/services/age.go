package services

import (
	"fmt"
	"time"
)

// FormatAge renders how long ago t was, the way the alert list shows it.
// Anything a week or older is shown as an absolute date in t's location.
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	mins := int(d / time.Minute)
	hours := mins / 60
	days := hours / 24

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return plural(mins, "minute") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days < 7:
		return plural(days, "day") + " ago"
	}

	return t.Format("Jan 2, 2006, 03:04 PM")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
