package shift

import (
	"fmt"
	"strings"
	"time"

	"floorplan/shared/constant"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
)

// Clock is a wall-clock time of day in seconds since midnight.
type Clock int

// ParseClock accepts HH:MM and HH:MM:SS.
func ParseClock(value string) (Clock, error) {
	value = strings.TrimSpace(value)

	for _, layout := range []string{constant.ClockFormat, constant.ShortClockFormat} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return NewClock(parsed.Hour(), parsed.Minute(), parsed.Second()), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
}

func NewClock(hour, minute, second int) Clock {
	return Clock(hour*secondsPerHour + minute*secondsPerMinute + second)
}

// ClockOf drops the date part of t.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute(), t.Second())
}

// String renders HH:MM:SS, the form stored in the reservations table.
func (c Clock) String() string {
	seconds := int(c)

	return fmt.Sprintf("%02d:%02d:%02d", seconds/secondsPerHour, seconds%secondsPerHour/secondsPerMinute, seconds%secondsPerMinute)
}

// Short renders HH:MM.
func (c Clock) Short() string {
	return c.String()[:5]
}

// Window is a half-open [Start, End) range of clock times.
type Window struct {
	Start Clock
	End   Clock
}

func (w Window) Contains(c Clock) bool {
	return c >= w.Start && c < w.End
}
