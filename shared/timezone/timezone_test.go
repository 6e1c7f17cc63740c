package timezone_test

import (
	"testing"
	"time"

	"floorplan/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestNowAndLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestFormat(t *testing.T) {
	testTime := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, "2006-01-02 15:04:05 MST"))
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(testTime).Location())
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	parsed, err := time.Parse(time.DateOnly, today)
	assert.NoError(t, err)
	assert.Equal(t, timezone.Now().Year(), parsed.Year())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid date", value: "2026-10-18", wantErr: false},
		{name: "leap day", value: "2028-02-29", wantErr: false},
		{name: "invalid day", value: "2026-02-30", wantErr: true},
		{name: "wrong layout", value: "18/10/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := timezone.ParseDate(tt.value)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.value, parsed.Format(time.DateOnly))
			assert.Equal(t, 0, parsed.Hour())
			assert.Equal(t, timezone.GetLocation(), parsed.Location())
		})
	}
}

func TestSetLocation(t *testing.T) {
	previous := timezone.GetLocation()
	t.Cleanup(func() { _ = timezone.SetLocation(previous.String()) })

	assert.NoError(t, timezone.SetLocation("Europe/Madrid"))
	assert.Equal(t, "Europe/Madrid", timezone.GetLocation().String())

	parsed, err := timezone.ParseDate("2026-07-01")
	assert.NoError(t, err)

	_, offset := parsed.Zone()
	assert.Equal(t, 2*60*60, offset, "summer time in Madrid is UTC+2")

	assert.Error(t, timezone.SetLocation("Mars/Olympus_Mons"))
	assert.Equal(t, "Europe/Madrid", timezone.GetLocation().String(), "failed lookups keep the current zone")
}
