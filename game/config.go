package game

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Millis is a duration written in YAML as a number of milliseconds.
type Millis time.Duration

// Duration returns m as a time.Duration.
func (m Millis) Duration() time.Duration { return time.Duration(m) }

func (m *Millis) UnmarshalYAML(n *yaml.Node) error {
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil || n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %q is not a millisecond count", n.Line, n.Value)
	}
	*m = Millis(v * float64(time.Millisecond))
	return nil
}

func (m Millis) MarshalYAML() (any, error) {
	return time.Duration(m).Milliseconds(), nil
}

// Config holds the game settings. It is loaded once and treated as
// immutable afterwards.
type Config struct {
	// BugScaleFactor sizes the bee as a fraction of the canvas.
	BugScaleFactor float64 `yaml:"bugScaleFactor"`
	// BaseInterval is the initial hop delay.
	BaseInterval Millis `yaml:"baseInterval"`
	// SpeedStep seeds the per-hit reduction of the hop delay.
	SpeedStep Millis `yaml:"speedStep"`
	// MaxRounds is the hop count that ends a game.
	MaxRounds int `yaml:"maxRounds"`
	// MaxMisses is the miss count that ends a game.
	MaxMisses int `yaml:"maxMisses"`

	// MinInterval floors the hop delay.
	MinInterval Millis `yaml:"minInterval"`
	// GracePeriod delays a hop once while the pointer is over the bee.
	GracePeriod Millis `yaml:"gracePeriod"`
	// HoverPoll is the hover leave-detection period.
	HoverPoll Millis `yaml:"hoverPoll"`
	// LoadTimeout bounds asset loading.
	LoadTimeout Millis `yaml:"loadTimeout"`

	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	ShowFPS  bool   `yaml:"showFPS"`
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		BugScaleFactor: 0.08,
		BaseInterval:   Millis(2 * time.Second),
		SpeedStep:      Millis(100 * time.Millisecond),
		MaxRounds:      50,
		MaxMisses:      5,
		MinInterval:    Millis(250 * time.Millisecond),
		GracePeriod:    Millis(300 * time.Millisecond),
		HoverPoll:      Millis(50 * time.Millisecond),
		LoadTimeout:    Millis(10 * time.Second),
		Width:          800,
		Height:         600,
		LogLevel:       "info",
	}
}

// unsetMillis marks a duration the document did not mention.
const unsetMillis = Millis(math.MinInt64)

// LoadConfig decodes YAML from r over DefaultConfig and validates the
// result. Keys missing from the document keep their defaults, except that an
// absent minInterval never exceeds baseInterval.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	defMin := cfg.MinInterval
	cfg.MinInterval = unsetMillis
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("game: decode config: %w", err)
	}
	if cfg.MinInterval == unsetMillis {
		cfg.MinInterval = defMin
		if cfg.BaseInterval > 0 {
			cfg.MinInterval = min(defMin, cfg.BaseInterval)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig on a file path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("game: open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate reports every setting that would break the game.
func (c Config) Validate() error {
	var errs []error
	if c.BugScaleFactor <= 0 || c.BugScaleFactor > 1 {
		errs = append(errs, fmt.Errorf("bugScaleFactor must be in (0, 1], got %v", c.BugScaleFactor))
	}
	if c.BaseInterval <= 0 {
		errs = append(errs, fmt.Errorf("baseInterval must be positive, got %v", c.BaseInterval.Duration()))
	}
	if c.SpeedStep < 0 {
		errs = append(errs, fmt.Errorf("speedStep must not be negative, got %v", c.SpeedStep.Duration()))
	}
	if c.MinInterval <= 0 || c.MinInterval > c.BaseInterval {
		errs = append(errs, fmt.Errorf("minInterval must be in (0, baseInterval], got %v", c.MinInterval.Duration()))
	}
	if c.MaxRounds <= 0 {
		errs = append(errs, fmt.Errorf("maxRounds must be positive, got %d", c.MaxRounds))
	}
	if c.MaxMisses <= 0 {
		errs = append(errs, fmt.Errorf("maxMisses must be positive, got %d", c.MaxMisses))
	}
	if c.GracePeriod < 0 || c.HoverPoll < 0 || c.LoadTimeout < 0 {
		errs = append(errs, fmt.Errorf("durations must not be negative: gracePeriod=%v hoverPoll=%v loadTimeout=%v", c.GracePeriod.Duration(), c.HoverPoll.Duration(), c.LoadTimeout.Duration()))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("game: invalid config: %w", errors.Join(errs...))
	}
	return nil
}
