package domain

import "time"

// MaxActivities bounds the persisted activity log
const MaxActivities = 100

// Activity is one entry in the inventory activity log
type Activity struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AppendActivity appends a to log, keeping only the most recent MaxActivities
func AppendActivity(log []Activity, a Activity) []Activity {
	log = append(log, a)
	if len(log) > MaxActivities {
		log = append([]Activity(nil), log[len(log)-MaxActivities:]...)
	}
	return log
}

// RecentActivities returns up to n entries, newest first
func RecentActivities(log []Activity, n int) []Activity {
	if n > len(log) {
		n = len(log)
	}
	out := make([]Activity, 0, n)
	for i := len(log) - 1; i >= len(log)-n; i-- {
		out = append(out, log[i])
	}
	return out
}
