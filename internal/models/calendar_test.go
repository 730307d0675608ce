package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2020-Jan-01 06:00", want: time.Date(2020, time.January, 1, 6, 0, 0, 0, time.UTC)},
		{in: "2020-Jan-1 06:00", want: time.Date(2020, time.January, 1, 6, 0, 0, 0, time.UTC)},
		{in: "1999-Dec-31 23:59", want: time.Date(1999, time.December, 31, 23, 59, 0, 0, time.UTC)},
		{in: "2020-Feb-29 12:30:45", want: time.Date(2020, time.February, 29, 12, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseCalendarDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestParseCalendarDateRejectsOtherFormats(t *testing.T) {
	for _, in := range []string{"", "2020-01-01 06:00", "2020-Jan-01", "2020-Jan-01T06:00"} {
		_, err := ParseCalendarDate(in)
		assert.ErrorIs(t, err, ErrParse, in)
	}
}

func TestCalendarDateRoundTrip(t *testing.T) {
	for _, in := range []string{"2020-Jan-01 06:00", "1900-Jan-01 00:11", "2200-Dec-31 23:59"} {
		parsed, err := ParseCalendarDate(in)
		require.NoError(t, err)

		formatted := FormatCalendarDate(parsed)
		assert.Equal(t, in, formatted)

		again, err := ParseCalendarDate(formatted)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(again))
	}
}
