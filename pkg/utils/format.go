package utils

import (
	"time"
)

// Constants
const (
	TRAIL_TS_LAYOUT = "2006-01-02 15:04:05"
	CLOCK_LAYOUT    = "15:04"
)

// FormatUTCClock converts epoch seconds to a UTC "HH:MM" string. Malformed
// epochs degrade to the N/A placeholder, isolated to the single field.
func FormatUTCClock(epoch int64) string {
	if epoch <= 0 {
		return NotAvailable
	}

	return time.Unix(epoch, 0).UTC().Format(CLOCK_LAYOUT)
}

// FormatTrailTimestamp converts epoch seconds to the timestamp label used
// on graph series.
func FormatTrailTimestamp(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(TRAIL_TS_LAYOUT)
}
