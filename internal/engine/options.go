package engine

// Options tunes the walking network the model derives from stop coordinates.
// Distances are meters, speeds meters per second.
type Options struct {
	WalkingSpeed        float64 `yaml:"walkingSpeed" validate:"gte=0"`
	DetourFactor        float64 `yaml:"detourFactor" validate:"gte=0"`
	MaxAccessDistance   float64 `yaml:"maxAccessDistance" validate:"gte=0"`
	MaxTransferDistance float64 `yaml:"maxTransferDistance" validate:"gte=0"`
	MaxWalkDistance     float64 `yaml:"maxWalkDistance" validate:"gte=0"`
}

// DefaultOptions returns the walking parameters used when none are configured.
func DefaultOptions() Options {
	return Options{
		WalkingSpeed:        1.2,
		DetourFactor:        1.3,
		MaxAccessDistance:   1000,
		MaxTransferDistance: 300,
		MaxWalkDistance:     2000,
	}
}

// withDefaults fills every zero field from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.WalkingSpeed <= 0 {
		o.WalkingSpeed = d.WalkingSpeed
	}
	if o.DetourFactor < 1 {
		o.DetourFactor = d.DetourFactor
	}
	if o.MaxAccessDistance <= 0 {
		o.MaxAccessDistance = d.MaxAccessDistance
	}
	if o.MaxTransferDistance <= 0 {
		o.MaxTransferDistance = d.MaxTransferDistance
	}
	if o.MaxWalkDistance <= 0 {
		o.MaxWalkDistance = d.MaxWalkDistance
	}
	return o
}
