package chatbot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

// IsAttended reports whether now falls inside the configured attended
// window. The instant is converted to the schedule's zone and compared as a
// local time of day on the half-open interval [start, end).
//
// Two degenerate cases are decided explicitly:
//   - an unset schedule (no start and no end) is always attended, so a shop
//     with the lazily created default config is not permanently out of hours;
//   - start == end is never attended, rather than guessing between the
//     always-open and always-closed readings of an empty interval.
//
// A schedule that fails to parse is treated as not attended; ValidateSchedule
// rejects such values before they are stored.
func IsAttended(s domain.Schedule, now time.Time) bool {
	if s.IsZero() {
		return true
	}

	start, err := parseClock(s.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(s.End)
	if err != nil {
		return false
	}
	if start == end {
		return false
	}

	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return false
	}
	local := now.In(loc)
	minute := local.Hour()*60 + local.Minute()

	return start <= minute && minute < end
}

// ValidateSchedule checks a schedule before it is persisted.
func ValidateSchedule(s domain.Schedule) error {
	if s.IsZero() {
		return nil
	}
	if _, err := parseClock(s.Start); err != nil {
		return fmt.Errorf("invalid start time %q: %w", s.Start, err)
	}
	if _, err := parseClock(s.End); err != nil {
		return fmt.Errorf("invalid end time %q: %w", s.End, err)
	}
	if s.Timezone == "" {
		return fmt.Errorf("timezone required")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}
	return nil
}

// parseClock converts an "HH:MM" value to minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day out of range")
	}
	return hour*60 + minute, nil
}
