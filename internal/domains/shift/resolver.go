package shift

import (
	"floorplan/config"
	"floorplan/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	defaultCutoff      = NewClock(17, 0, 0)
	defaultMiddayTime  = NewClock(13, 0, 0)
	defaultEveningTime = NewClock(20, 0, 0)
	endOfDay           = NewClock(23, 59, 59)
)

// Resolver splits the day into the midday and evening services around a single cutoff.
type Resolver struct {
	cutoff      Clock
	middayTime  Clock
	eveningTime Clock
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		cutoff:      clockOrDefault("shift cutoff", cfg.Restaurant.ShiftCutoff, defaultCutoff),
		middayTime:  clockOrDefault("midday service time", cfg.Restaurant.MiddayServiceTime, defaultMiddayTime),
		eveningTime: clockOrDefault("evening service time", cfg.Restaurant.EveningServiceTime, defaultEveningTime),
	}
}

func clockOrDefault(name, value string, fallback Clock) Clock {
	if value == "" {
		return fallback
	}

	c, err := ParseClock(value)
	if err != nil {
		log.Warn().Err(err).Str("setting", name).Str("fallback", fallback.String()).Msg("invalid restaurant time setting, using fallback")

		return fallback
	}

	return c
}

// Resolve returns Evening for any time at or after the cutoff.
func (r *Resolver) Resolve(c Clock) Shift {
	if c < r.cutoff {
		return Midday
	}

	return Evening
}

func (r *Resolver) Window(s Shift) Window {
	if s == Midday {
		return Window{Start: 0, End: r.cutoff}
	}

	return Window{Start: r.cutoff, End: endOfDay}
}

// ServiceTime is the representative time stored for walk-ins.
func (r *Resolver) ServiceTime(s Shift) Clock {
	if s == Midday {
		return r.middayTime
	}

	return r.eveningTime
}

func (r *Resolver) Cutoff() Clock {
	return r.cutoff
}

// Current resolves the shift of the current time in the application timezone.
func (r *Resolver) Current() Shift {
	return r.Resolve(ClockOf(timezone.Now()))
}

// ParseOrCurrent parses value, defaulting to the current shift when empty.
func (r *Resolver) ParseOrCurrent(value string) (Shift, error) {
	if value == "" {
		return r.Current(), nil
	}

	return Parse(value)
}
