package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLatitude(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		wantErr bool
	}{
		{name: "Hanoi", lat: 21.0278},
		{name: "north pole", lat: 90},
		{name: "south pole", lat: -90},
		{name: "too far north", lat: 90.1, wantErr: true},
		{name: "too far south", lat: -91, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLatitude(tt.lat)
			if tt.wantErr {
				assert.EqualError(t, err, "latitude must be between -90 and 90")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLongitude(t *testing.T) {
	assert.NoError(t, ValidateLongitude(105.8342))
	assert.NoError(t, ValidateLongitude(-180))
	assert.EqualError(t, ValidateLongitude(180.5), "longitude must be between -180 and 180")
}

func TestValidateRadius(t *testing.T) {
	assert.NoError(t, ValidateRadius(0))
	assert.NoError(t, ValidateRadius(5000))
	assert.EqualError(t, ValidateRadius(-1), "radius must be non-negative")
	assert.EqualError(t, ValidateRadius(5001), "radius too large (max 5000 meters)")
}

func TestValidateLocationParams(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		assert.Empty(t, ValidateLocationParams(21.0278, 105.8342, 500, 10))
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		fieldErrors := ValidateLocationParams(100, 200, -5, 1000)
		assert.Len(t, fieldErrors, 4)
		assert.Contains(t, fieldErrors, "lat")
		assert.Contains(t, fieldErrors, "lon")
		assert.Contains(t, fieldErrors, "radius")
		assert.Contains(t, fieldErrors, "limit")
	})
}
