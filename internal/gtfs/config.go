package gtfs

import (
	"fmt"
	"time"
)

// DefaultTimezone is the zone service dates are resolved in when none is configured.
const DefaultTimezone = "Asia/Ho_Chi_Minh"

type Config struct {
	// Sources are GTFS zip files, unzipped feed directories or http(s) URLs.
	Sources     []string `yaml:"sources" validate:"required,min=1,dive,required"`
	ServiceDate string   `yaml:"serviceDate" validate:"omitempty,datetime=2006-01-02"`
	Timezone    string   `yaml:"timezone" validate:"required,timezone"`
	Verbose     bool     `yaml:"verbose"`
}

func (config Config) location() (*time.Location, error) {
	name := config.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

// ResolveServiceDate parses a YYYY-MM-DD date in loc. An empty value selects the day now falls on in loc.
func ResolveServiceDate(value string, loc *time.Location, now time.Time) (time.Time, error) {
	if value == "" {
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
	}

	date, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid service date %q: %w", value, err)
	}
	return date, nil
}
