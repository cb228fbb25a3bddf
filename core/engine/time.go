package engine

import (
	"fmt"
	"time"

	"github.com/claritycare/roster-engine/core/domain"
)

// MinutesToHHMM renders minutes-since-midnight on the teacher's "15:04"
// layout (domain.Time24hLayout), bijective on the 15-minute grid.
func MinutesToHHMM(minute int) string {
	t := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute)
	return t.Format(domain.Time24hLayout)
}

// HHMMToMinutes parses a "15:04"-formatted string into minutes since
// midnight.
func HHMMToMinutes(raw string) (int, error) {
	parsed, err := time.Parse(domain.Time24hLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", raw, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
