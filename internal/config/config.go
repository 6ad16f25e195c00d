package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pathviz/internal/client"
	"github.com/san-kum/pathviz/internal/grid"
)

const (
	DefaultSpeed      = 10
	MinSpeed          = 5
	MaxSpeed          = 100
	SpeedStep         = 5
	DefaultPathFactor = 5
	DefaultTheme      = "classic"
	DefaultLogLevel   = "info"
)

type Config struct {
	ServiceURL string        `yaml:"service_url" mapstructure:"service_url"`
	Algorithm  string        `yaml:"algorithm" mapstructure:"algorithm"`
	SpeedMs    int           `yaml:"speed_ms" mapstructure:"speed_ms"`
	PathFactor int           `yaml:"path_factor" mapstructure:"path_factor"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Width      int           `yaml:"width" mapstructure:"width"`
	Height     int           `yaml:"height" mapstructure:"height"`
	Start      grid.Coord    `yaml:"start" mapstructure:"start"`
	Finish     grid.Coord    `yaml:"finish" mapstructure:"finish"`
	Theme      string        `yaml:"theme" mapstructure:"theme"`
	LogFile    string        `yaml:"log_file,omitempty" mapstructure:"log_file"`
	LogLevel   string        `yaml:"log_level" mapstructure:"log_level"`
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string `yaml:"metrics_addr,omitempty" mapstructure:"metrics_addr"`
}

func DefaultConfig() *Config {
	return &Config{
		ServiceURL: client.DefaultBaseURL,
		Algorithm:  string(client.BFS),
		SpeedMs:    DefaultSpeed,
		PathFactor: DefaultPathFactor,
		Timeout:    client.DefaultTimeout,
		Width:      grid.DefaultWidth,
		Height:     grid.DefaultHeight,
		Start:      grid.Coord{Row: grid.DefaultStartRow, Col: grid.DefaultStartCol},
		Finish:     grid.Coord{Row: grid.DefaultFinishRow, Col: grid.DefaultFinishCol},
		Theme:      DefaultTheme,
		LogLevel:   DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if _, err := client.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if err := ValidateSpeed(c.SpeedMs); err != nil {
		return err
	}
	if c.PathFactor < 1 {
		return fmt.Errorf("path_factor must be at least 1, got %d", c.PathFactor)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := c.NewGrid(); err != nil {
		return err
	}
	return nil
}

func ValidateSpeed(ms int) error {
	if ms < MinSpeed || ms > MaxSpeed || ms%SpeedStep != 0 {
		return fmt.Errorf("speed must be a multiple of %d in [%d, %d], got %d", SpeedStep, MinSpeed, MaxSpeed, ms)
	}
	return nil
}

// ClampSpeed snaps ms onto the speed scale.
func ClampSpeed(ms int) int {
	if ms < MinSpeed {
		return MinSpeed
	}
	if ms > MaxSpeed {
		return MaxSpeed
	}
	return ms - ms%SpeedStep
}

func (c *Config) NewGrid() (grid.Grid, error) {
	return grid.New(c.Width, c.Height, c.Start, c.Finish)
}

func (c *Config) GetAlgorithm() client.Algorithm {
	a, err := client.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return client.BFS
	}
	return a
}

func (c *Config) Speed() time.Duration {
	return time.Duration(c.SpeedMs) * time.Millisecond
}
