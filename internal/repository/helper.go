package repository

import (
	"fmt"
	"time"
)

// TimeFormat is the layout for timestamps written by Go code. The
// fractional seconds are fixed width, never trimmed, so the stored TEXT
// sorts lexicographically in chronological order and same-second
// transactions keep their true relative order on replay.
const TimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ParseTime parses a timestamp string in RFC3339 or "2006-01-02 15:04:05"
// format. SQLite stores DATETIME defaults in the latter form while values
// written by Go code round-trip as RFC3339 with fractional seconds.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(time.RFC3339, str)
	if err != nil {
		returnTime, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
