package domain

import "time"

// RelativeDay renders t as "Today", "Yesterday" or a short date, relative to now
func RelativeDay(t, now time.Time) string {
	if sameDay(t, now) {
		return "Today"
	}

	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return t.Format("2 Jan 2006")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
