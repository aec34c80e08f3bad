package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloatParam(t *testing.T) {
	params := url.Values{}
	params.Set("lat", "21.0278")
	params.Set("lon", "east")

	lat, fieldErrors := ParseFloatParam(params, "lat", nil)
	assert.Equal(t, 21.0278, lat)
	assert.Empty(t, fieldErrors)

	lon, fieldErrors := ParseFloatParam(params, "lon", fieldErrors)
	assert.Equal(t, 0.0, lon)
	assert.Equal(t, []string{`Invalid field value for field "lon".`}, fieldErrors["lon"])

	radius, fieldErrors := ParseFloatParam(params, "radius", fieldErrors)
	assert.Equal(t, 0.0, radius)
	assert.NotContains(t, fieldErrors, "radius")
}

func TestParseFloatParamRejectsNonFinite(t *testing.T) {
	for _, value := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity", "1e400"} {
		t.Run(value, func(t *testing.T) {
			params := url.Values{}
			params.Set("lat_from", value)

			v, fieldErrors := ParseRequiredFloatParam(params, "lat_from", nil)
			assert.Equal(t, 0.0, v)
			assert.Equal(t, []string{`Invalid field value for field "lat_from".`}, fieldErrors["lat_from"])
		})
	}
}

func TestParseRequiredFloatParam(t *testing.T) {
	params := url.Values{}
	params.Set("lat_from", "21.0278")

	v, fieldErrors := ParseRequiredFloatParam(params, "lat_from", nil)
	assert.Equal(t, 21.0278, v)
	assert.Empty(t, fieldErrors)

	_, fieldErrors = ParseRequiredFloatParam(params, "lon_from", fieldErrors)
	assert.Equal(t, []string{`Missing required field "lon_from".`}, fieldErrors["lon_from"])
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      int
		wantError bool
	}{
		{name: "absent uses default", value: "", want: 3},
		{name: "explicit value", value: "1", want: 1},
		{name: "negative value is parsed", value: "-2", want: -2},
		{name: "float is rejected", value: "1.5", want: 3, wantError: true},
		{name: "text is rejected", value: "many", want: 3, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := url.Values{}
			if tt.value != "" {
				params.Set("max_transfers", tt.value)
			}
			got, fieldErrors := ParseIntParam(params, "max_transfers", 3, nil)
			assert.Equal(t, tt.want, got)
			if tt.wantError {
				assert.Contains(t, fieldErrors, "max_transfers")
			} else {
				assert.Empty(t, fieldErrors)
			}
		})
	}
}
