package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadConfigEmptyUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	doc := `
bugScaleFactor: 0.1
baseInterval: 1500
speedStep: 12.5
maxRounds: 20
maxMisses: 3
showFPS: true
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.InDelta(t, 0.1, cfg.BugScaleFactor, 1e-12)
	require.Equal(t, 1500*time.Millisecond, cfg.BaseInterval.Duration())
	require.Equal(t, 12500*time.Microsecond, cfg.SpeedStep.Duration())
	require.Equal(t, 20, cfg.MaxRounds)
	require.Equal(t, 3, cfg.MaxMisses)
	require.True(t, cfg.ShowFPS)

	// Untouched keys keep their defaults.
	def := DefaultConfig()
	require.Equal(t, def.MinInterval, cfg.MinInterval)
	require.Equal(t, def.Width, cfg.Width)
}

func TestLoadConfigShortBaseInterval(t *testing.T) {
	doc := `
bugScaleFactor: 0.08
baseInterval: 200
speedStep: 10
maxRounds: 50
maxMisses: 5
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 200*time.Millisecond, cfg.MinInterval.Duration(), "absent minInterval follows baseInterval down")

	_, err = LoadConfig(strings.NewReader("baseInterval: 200\nminInterval: 300\n"))
	require.ErrorContains(t, err, "minInterval", "an explicit minInterval is still checked")

	cfg, err = LoadConfig(strings.NewReader("baseInterval: 5000\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().MinInterval, cfg.MinInterval)
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("bugScale: 0.1\n"))
	require.ErrorContains(t, err, "bugScale")
}

func TestLoadConfigRejectsBadMillis(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("baseInterval: soon\n"))
	require.ErrorContains(t, err, "millisecond")

	_, err = LoadConfig(strings.NewReader("baseInterval: [1, 2]\n"))
	require.Error(t, err)
}

func TestConfigValidateReportsEverything(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BugScaleFactor = 0
	cfg.MaxRounds = 0
	cfg.MaxMisses = -1
	cfg.Width = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"bugScaleFactor", "maxRounds", "maxMisses", "width and height"} {
		require.ErrorContains(t, err, want)
	}
}

func TestConfigValidateIntervals(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero base", func(c *Config) { c.BaseInterval = 0 }, "baseInterval"},
		{"negative step", func(c *Config) { c.SpeedStep = Millis(-time.Millisecond) }, "speedStep"},
		{"min above base", func(c *Config) { c.MinInterval = c.BaseInterval + 1 }, "minInterval"},
		{"zero min", func(c *Config) { c.MinInterval = 0 }, "minInterval"},
		{"negative grace", func(c *Config) { c.GracePeriod = Millis(-time.Millisecond) }, "gracePeriod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestMillisRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(struct {
		D Millis `yaml:"d"`
	}{Millis(250 * time.Millisecond)})
	require.NoError(t, err)
	require.Equal(t, "d: 250\n", string(out))
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxMisses: 7\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.MaxMisses)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "open config")
}
