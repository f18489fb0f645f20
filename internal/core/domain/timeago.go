package domain

import (
	"fmt"
	"time"
)

// TimeAgo renders a human-relative age label for a creation timestamp.
// Buckets: under an hour "just now", under a day "<N> hour(s) ago",
// otherwise "<N> day(s) ago".
func TimeAgo(createdAt, now time.Time) string {
	diff := now.Sub(createdAt)
	if diff < time.Hour {
		return "just now"
	}
	if diff < 24*time.Hour {
		return plural(int(diff.Hours()), "hour")
	}
	return plural(int(diff.Hours())/24, "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
