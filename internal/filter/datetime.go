package filter

import (
	"fmt"
	"time"
)

func ParseDateTime(value string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,                // 2006-01-02T15:04:05.999999999Z07:00
		time.RFC3339,                    // 2006-01-02T15:04:05Z07:00
		"2006-01-02T15:04:05.999999999", // Nanoseconds without timezone
		"2006-01-02T15:04:05",           // Seconds without timezone
		"2006-01-02T15:04",              // Minutes without timezone
		"2006-01-02 15:04:05",           // Seconds with space
		"2006-01-02 15:04",              // Minutes with space
		"2006-01-02",                    // Date only
		"2006/01/02",                    // Date only, slash separated
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}
