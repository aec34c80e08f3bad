package utils

import "errors"

// MaxSearchRadius caps nearby-stop searches.
const MaxSearchRadius = 5000.0

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRadius validates radius values for location searches
func ValidateRadius(radius float64) error {
	if radius < 0 {
		return errors.New("radius must be non-negative")
	}

	if radius > MaxSearchRadius {
		return errors.New("radius too large (max 5000 meters)")
	}

	return nil
}

// ValidateLimit validates result count limits.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return errors.New("limit must be non-negative")
	}
	if limit > 100 {
		return errors.New("limit too large (max 100)")
	}
	return nil
}

// ValidateLocationParams validates a complete set of nearby-search parameters
func ValidateLocationParams(lat, lon, radius float64, limit int) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}

	if err := ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}

	if err := ValidateRadius(radius); err != nil {
		fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
	}

	if err := ValidateLimit(limit); err != nil {
		fieldErrors["limit"] = append(fieldErrors["limit"], err.Error())
	}

	return fieldErrors
}
