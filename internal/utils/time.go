package utils

import "time"

const layoutDate = "2006-01-02"

// DBNow is the timestamp written to DATETIME columns: UTC, whole seconds.
func DBNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}
