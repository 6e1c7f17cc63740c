package shift_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"floorplan/config"
	"floorplan/internal/domains/shift"
)

func newResolver(cutoff string) *shift.Resolver {
	cfg := &config.Config{}
	cfg.Restaurant.ShiftCutoff = cutoff
	cfg.Restaurant.MiddayServiceTime = "13:00:00"
	cfg.Restaurant.EveningServiceTime = "20:00"

	return shift.NewResolver(cfg)
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    shift.Shift
		wantErr bool
	}{
		{input: "midday", want: shift.Midday},
		{input: "Evening", want: shift.Evening},
		{input: "mediodia", want: shift.Midday},
		{input: "comida", want: shift.Midday},
		{input: " noche ", want: shift.Evening},
		{input: "cena", want: shift.Evening},
		{input: "brunch", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := shift.Parse(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, shift.ErrUnknownShift)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShift_LabelAndValidate(t *testing.T) {
	assert.Equal(t, "Mediodía", shift.Midday.Label())
	assert.Equal(t, "Noche", shift.Evening.Label())
	assert.NoError(t, shift.Midday.Validate())
	assert.Error(t, shift.Shift("late").Validate())
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input     string
		wantLong  string
		wantShort string
		wantErr   bool
	}{
		{input: "13:00", wantLong: "13:00:00", wantShort: "13:00"},
		{input: "14:30:15", wantLong: "14:30:15", wantShort: "14:30"},
		{input: "00:00", wantLong: "00:00:00", wantShort: "00:00"},
		{input: "24:00", wantErr: true},
		{input: "1pm", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := shift.ParseClock(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, shift.ErrInvalidClock)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantLong, got.String())
			assert.Equal(t, tt.wantShort, got.Short())
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	resolver := newResolver("17:00:00")

	tests := []struct {
		clock string
		want  shift.Shift
	}{
		{clock: "00:00:00", want: shift.Midday},
		{clock: "13:00", want: shift.Midday},
		{clock: "16:59:59", want: shift.Midday},
		{clock: "17:00:00", want: shift.Evening},
		{clock: "21:00", want: shift.Evening},
		{clock: "23:59:59", want: shift.Evening},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			c, err := shift.ParseClock(tt.clock)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resolver.Resolve(c))
		})
	}
}

func TestResolver_Window(t *testing.T) {
	resolver := newResolver("17:00:00")

	midday := resolver.Window(shift.Midday)
	assert.Equal(t, "00:00:00", midday.Start.String())
	assert.Equal(t, "17:00:00", midday.End.String())
	assert.True(t, midday.Contains(shift.NewClock(13, 0, 0)))
	assert.False(t, midday.Contains(shift.NewClock(17, 0, 0)))

	evening := resolver.Window(shift.Evening)
	assert.Equal(t, "17:00:00", evening.Start.String())
	assert.Equal(t, "23:59:59", evening.End.String())
	assert.True(t, evening.Contains(shift.NewClock(17, 0, 0)))
	assert.True(t, evening.Contains(shift.NewClock(21, 0, 0)))
}

func TestResolver_ServiceTime(t *testing.T) {
	resolver := newResolver("17:00:00")

	assert.Equal(t, "13:00:00", resolver.ServiceTime(shift.Midday).String())
	assert.Equal(t, "20:00:00", resolver.ServiceTime(shift.Evening).String())
}

func TestResolver_InvalidCutoffFallsBack(t *testing.T) {
	resolver := newResolver("late afternoon")

	assert.Equal(t, "17:00:00", resolver.Cutoff().String())
}

func TestResolver_CustomCutoff(t *testing.T) {
	resolver := newResolver("16:00")

	assert.Equal(t, shift.Evening, resolver.Resolve(shift.NewClock(16, 30, 0)))
	assert.Equal(t, shift.Midday, resolver.Resolve(shift.NewClock(15, 59, 59)))
}

func TestResolver_ParseOrCurrent(t *testing.T) {
	resolver := newResolver("17:00:00")

	got, err := resolver.ParseOrCurrent("")
	assert.NoError(t, err)
	assert.NoError(t, got.Validate())

	got, err = resolver.ParseOrCurrent("noche")
	assert.NoError(t, err)
	assert.Equal(t, shift.Evening, got)

	_, err = resolver.ParseOrCurrent("late")
	assert.Error(t, err)
}
