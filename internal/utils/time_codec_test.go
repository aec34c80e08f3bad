package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "morning departure", input: "08:00:00", want: 28800},
		{name: "midnight", input: "00:00:00", want: 0},
		{name: "last second of the day", input: "23:59:59", want: 86399},
		{name: "single digit fields", input: "8:5:3", want: 8*3600 + 5*60 + 3},
		{name: "minutes over 59 are accepted", input: "07:75:00", want: 7*3600 + 75*60},
		{name: "hours past midnight", input: "25:00:00", want: 90000},
		{name: "negative seconds", input: "-0:0:1", want: -1},
		{name: "largest accepted total", input: "0:0:2147483647", want: 2147483647},
		{name: "hours overflowing the day arithmetic", input: "9223372036854775807:0:0", wantErr: true},
		{name: "field beyond int64", input: "99999999999999999999:0:0", wantErr: true},
		{name: "sum past the bound", input: "596524:0:0", wantErr: true},
		{name: "negative sum past the bound", input: "-596524:0:0", wantErr: true},
		{name: "two fields", input: "8:0", wantErr: true},
		{name: "four fields", input: "08:00:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "non numeric", input: "aa:bb:cc", wantErr: true},
		{name: "decimal seconds", input: "08:00:00.5", wantErr: true},
		{name: "epoch timestamp", input: "1718000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClockTime(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClockTime(0))
	assert.Equal(t, "08:00:00", FormatClockTime(28800))
	assert.Equal(t, "23:59:59", FormatClockTime(86399))
	assert.Equal(t, "25:00:00", FormatClockTime(90000))
	assert.Equal(t, "100:00:01", FormatClockTime(360001))
	assert.Equal(t, "-1:59:59", FormatClockTime(-1))
	assert.Equal(t, "-1:00:00", FormatClockTime(-3600))
	assert.Equal(t, "-2:59:00", FormatClockTime(-3660))
}

func TestNegativeClockTimeRoundTrip(t *testing.T) {
	for _, s := range []int{-1, -59, -3600, -3661, -86400} {
		got, err := ParseClockTime(FormatClockTime(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestClockTimeRoundTrip(t *testing.T) {
	for s := 0; s < 86400; s++ {
		got, err := ParseClockTime(FormatClockTime(s))
		require.NoError(t, err)
		if got != s {
			t.Fatalf("round trip of %d produced %d", s, got)
		}
	}
}
