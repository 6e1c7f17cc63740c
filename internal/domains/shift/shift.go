package shift

import (
	"errors"
	"fmt"
	"strings"
)

type Shift string

const (
	Midday  Shift = "midday"
	Evening Shift = "evening"
)

var (
	ErrUnknownShift = errors.New("unknown shift")
	ErrInvalidClock = errors.New("invalid time, expected HH:MM or HH:MM:SS")
)

// Parse accepts the canonical names and the legacy spanish aliases.
func Parse(value string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "midday", "mediodia", "mediodía", "comida":
		return Midday, nil
	case "evening", "noche", "cena":
		return Evening, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShift, value)
	}
}

func (s Shift) Validate() error {
	switch s {
	case Midday, Evening:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShift, string(s))
	}
}

// Label is the name shown to staff and used in conflict messages.
func (s Shift) Label() string {
	switch s {
	case Midday:
		return "Mediodía"
	case Evening:
		return "Noche"
	default:
		return string(s)
	}
}

func (s Shift) String() string {
	return string(s)
}
