package utils

import "time"

// DaysUntil returns the whole-day difference between the deadline's date
// and now's date, ignoring time of day. The dates are re-anchored in UTC so
// a DST transition between them cannot shorten a day below 24h and skew the
// count.
func DaysUntil(deadline, now time.Time) int {
	d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n) / (24 * time.Hour))
}
