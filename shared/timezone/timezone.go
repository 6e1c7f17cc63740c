package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"floorplan/config"
	"floorplan/shared/constant"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone
	if name == constant.Empty {
		log.Warn().Msg("No timezone configured, using UTC")

		return
	}

	if err := SetLocation(name); err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Falling back to UTC, use IANA names such as Europe/Madrid")

		return
	}

	log.Info().Str("timezone", name).Msg("Application timezone initialized")
}

// SetLocation switches the application timezone. The previous location is kept
// when name cannot be resolved.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	location.Store(loc)

	return nil
}

// GetLocation returns the application timezone, UTC until one is set.
func GetLocation() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as wall-clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Today is the restaurant's current calendar date, YYYY-MM-DD.
func Today() string {
	return Now().Format(constant.DateOnlyFormat)
}

// ParseDate parses YYYY-MM-DD as midnight in the application timezone.
func ParseDate(value string) (time.Time, error) {
	return Parse(constant.DateOnlyFormat, value)
}
