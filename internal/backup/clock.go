package backup

import "time"

// TimestampFormat is the backup suffix layout (YYYYMMDD_HHMMSS).
const TimestampFormat = "20060102_150405"

// Clock provides the current time for backup naming
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in local time
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock time.Time

// Now returns the fixed time
func (c FixedClock) Now() time.Time { return time.Time(c) }

// Timestamp formats t as a backup suffix
func Timestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}
