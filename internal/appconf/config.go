package appconf

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"hustbus.org/routeplanner/internal/engine"
	"hustbus.org/routeplanner/internal/gtfs"
)

// Config holds the HTTP server settings of the Application.
type Config struct {
	Port                  int           `yaml:"port" validate:"gte=1,lte=65535"`
	Env                   Environment   `yaml:"-"`
	EnvName               string        `yaml:"env" validate:"omitempty,oneof=development test production"`
	RateLimit             int           `yaml:"rateLimit" validate:"gte=0"`
	TrustProxy            bool          `yaml:"trustProxy"`
	SearchTimeout         time.Duration `yaml:"searchTimeout" validate:"gte=0"`
	MaxConcurrentSearches int           `yaml:"maxConcurrentSearches" validate:"gte=0"`
	LogLevel              string        `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// File is the layout of the optional YAML configuration file.
type File struct {
	Server Config         `yaml:"server"`
	GTFS   gtfs.Config    `yaml:"gtfs"`
	Engine engine.Options `yaml:"engine"`
}

// DefaultFile returns the settings used for anything neither the file nor a flag sets.
func DefaultFile() File {
	return File{
		Server: Config{
			Port:      4000,
			Env:       Development,
			EnvName:   Development.String(),
			RateLimit: 100,
		},
		GTFS: gtfs.Config{
			Timezone: gtfs.DefaultTimezone,
		},
		Engine: engine.DefaultOptions(),
	}
}

// LoadFile reads a YAML file over DefaultFile. Keys missing from the file keep their defaults.
func LoadFile(path string) (File, error) {
	cfg := DefaultFile()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.Server.Env = EnvFlagToEnvironment(cfg.Server.EnvName)
	return cfg, nil
}

// Validate checks every section of the merged configuration.
func (f File) Validate() error {
	v := validator.New()
	if err := v.Struct(f.Server); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	if err := v.Struct(f.GTFS); err != nil {
		return fmt.Errorf("invalid gtfs config: %w", err)
	}
	if err := v.Struct(f.Engine); err != nil {
		return fmt.Errorf("invalid engine config: %w", err)
	}
	return nil
}
