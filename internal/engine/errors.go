package engine

import "errors"

var (
	// ErrEmptyModel is returned by BuildModel when no trip runs on the service date.
	ErrEmptyModel = errors.New("no scheduled trips run on the service date")
	// ErrInvalidCoordinate is returned for NaN, infinite or out-of-range coordinates.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrOutsideCoverage is returned when a coordinate lies outside the model's stop area.
	ErrOutsideCoverage = errors.New("point is outside the transit model coverage")
	// ErrForeignPoint is returned when a point was resolved against a different model.
	ErrForeignPoint = errors.New("point was not resolved against this transit model")
)
