package appconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := map[string]Environment{
		"production":  Production,
		"PROD":        Production,
		"test":        Test,
		"development": Development,
		"":            Development,
		"staging":     Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, EnvFlagToEnvironment(in), "env %q", in)
	}

	assert.Equal(t, "production", Production.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "development", Development.String())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  env: production
  searchTimeout: 5s
  maxConcurrentSearches: 8
gtfs:
  sources:
    - ./data/hanoi.zip
    - https://example.org/gtfs.zip
  serviceDate: "2025-06-02"
engine:
  walkingSpeed: 1.4
  maxTransferDistance: 250
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, Production, cfg.Server.Env)
	assert.Equal(t, 5*time.Second, cfg.Server.SearchTimeout)
	assert.Equal(t, 8, cfg.Server.MaxConcurrentSearches)
	assert.Equal(t, 100, cfg.Server.RateLimit, "unset keys keep their defaults")

	assert.Equal(t, []string{"./data/hanoi.zip", "https://example.org/gtfs.zip"}, cfg.GTFS.Sources)
	assert.Equal(t, "2025-06-02", cfg.GTFS.ServiceDate)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.GTFS.Timezone)

	assert.Equal(t, 1.4, cfg.Engine.WalkingSpeed)
	assert.Equal(t, 250.0, cfg.Engine.MaxTransferDistance)
	assert.Equal(t, 1000.0, cfg.Engine.MaxAccessDistance)

	require.NoError(t, cfg.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(writeConfig(t, "server: [unclosed"))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate(t *testing.T) {
	valid := DefaultFile()
	valid.GTFS.Sources = []string{"feed.zip"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*File)
		want   string
	}{
		{name: "no sources", mutate: func(f *File) { f.GTFS.Sources = nil }, want: "gtfs"},
		{name: "empty source", mutate: func(f *File) { f.GTFS.Sources = []string{""} }, want: "gtfs"},
		{name: "port out of range", mutate: func(f *File) { f.Server.Port = 70000 }, want: "server"},
		{name: "unknown env", mutate: func(f *File) { f.Server.EnvName = "staging" }, want: "server"},
		{name: "negative rate limit", mutate: func(f *File) { f.Server.RateLimit = -1 }, want: "server"},
		{name: "bad log level", mutate: func(f *File) { f.Server.LogLevel = "verbose" }, want: "server"},
		{name: "bad service date", mutate: func(f *File) { f.GTFS.ServiceDate = "02-06-2025" }, want: "gtfs"},
		{name: "bad timezone", mutate: func(f *File) { f.GTFS.Timezone = "Mars/Olympus" }, want: "gtfs"},
		{name: "negative walking speed", mutate: func(f *File) { f.Engine.WalkingSpeed = -1 }, want: "engine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			f.GTFS.Sources = []string{"feed.zip"}
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid "+tt.want+" config")
		})
	}
}
