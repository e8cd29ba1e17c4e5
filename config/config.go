// Package config loads the settings of a simulation run from YAML files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/spikenet/logging"
	"github.com/sarchlab/spikenet/neuron"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SPIKENET_"

// Config contains all the settings of a run.
type Config struct {
	Network NetworkConfig `yaml:"network"`
	Run     RunConfig     `yaml:"run"`
	Output  OutputConfig  `yaml:"output"`
	Monitor MonitorConfig `yaml:"monitor"`
	Logging LoggingConfig `yaml:"logging"`
}

// NetworkConfig describes the ensemble and its topology.
type NetworkConfig struct {
	Size int `yaml:"size"`

	// InhibitoryFraction is the share of FS neurons created when Types is
	// empty.
	InhibitoryFraction float64 `yaml:"inhibitory_fraction"`

	// Types maps archetype names to their share of the ensemble. Neurons
	// left over are RS.
	Types map[string]float64 `yaml:"types,omitempty"`

	MeanDegree   float64 `yaml:"mean_degree"`
	MeanStrength float64 `yaml:"mean_strength"`

	// Workers is the number of goroutines stepping the network.
	Workers int `yaml:"workers"`
}

// RunConfig controls the simulated time and the thalamic input.
type RunConfig struct {
	// Seed of the sampling source. Zero picks a random seed.
	Seed      uint64  `yaml:"seed"`
	Steps     uint64  `yaml:"steps"`
	InputMean float64 `yaml:"input_mean"`
	InputSD   float64 `yaml:"input_sd"`
}

// OutputConfig names the report files.
type OutputConfig struct {
	// Prefix of the text reports: <prefix>_spikes.txt, <prefix>_params.txt
	// and <prefix>_samples.txt.
	Prefix string `yaml:"prefix"`

	// Database enables the SQLite recording.
	Database bool `yaml:"database"`

	// DatabasePath is the recording path without extension. Empty picks a
	// unique name.
	DatabasePath string `yaml:"database_path,omitempty"`
}

// MonitorConfig configures the HTTP monitor.
type MonitorConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	OpenBrowser bool `yaml:"open_browser"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with the defaults of a small cortical run.
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			Size:               1000,
			InhibitoryFraction: 0.2,
			MeanDegree:         10,
			MeanStrength:       5,
			Workers:            1,
		},
		Run: RunConfig{
			Steps:   1000,
			InputSD: 5,
		},
		Output: OutputConfig{
			Prefix: "spikenet",
		},
		Monitor: MonitorConfig{
			Port: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from the defaults, then the YAML file at path, then
// the variables of envFile, then the SPIKENET_* environment. Empty paths are
// skipped. A missing envFile is not an error.
func Load(path, envFile string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}

	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Settings the
// file omits keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	n := c.Network

	if n.Size < 0 {
		return fmt.Errorf("size must be non-negative, got %d", n.Size)
	}

	if n.InhibitoryFraction < 0 || n.InhibitoryFraction > 1 {
		return fmt.Errorf("inhibitory_fraction must be between 0 and 1, got %f",
			n.InhibitoryFraction)
	}

	total := 0.0
	for name, share := range n.Types {
		if _, ok := neuron.ParseArchetype(name); !ok {
			return fmt.Errorf("unknown neuron type: %s", name)
		}

		if share < 0 {
			return fmt.Errorf("share of %s must be non-negative, got %f", name, share)
		}

		total += share
	}

	if total > 1+1e-9 {
		return fmt.Errorf("neuron type shares add up to %f, more than 1", total)
	}

	if n.MeanDegree < 0 {
		return fmt.Errorf("mean_degree must be non-negative, got %f", n.MeanDegree)
	}

	if n.MeanStrength < 0 {
		return fmt.Errorf("mean_strength must be non-negative, got %f", n.MeanStrength)
	}

	if n.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", n.Workers)
	}

	if c.Run.InputSD < 0 {
		return fmt.Errorf("input_sd must be non-negative, got %f", c.Run.InputSD)
	}

	if c.Output.Prefix == "" {
		return errors.New("output prefix must not be empty")
	}

	if c.Monitor.Port < 0 || c.Monitor.Port > 65535 {
		return fmt.Errorf("invalid monitor port: %d", c.Monitor.Port)
	}

	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)",
			c.Logging.Level)
	}

	return nil
}

// Counts converts the configured type shares into neuron counts for an
// ensemble of the given size. Counts are rounded and trimmed, in reverse
// name order, so they never exceed size.
func (c *Config) Counts(size int) neuron.Counts {
	counts := make(neuron.Counts, len(c.Network.Types))

	names := make([]string, 0, len(c.Network.Types))
	for name, share := range c.Network.Types {
		counts[name] = int(math.Round(share * float64(size)))
		names = append(names, name)
	}
	slices.Sort(names)

	excess := counts.Total() - size
	for i := len(names) - 1; i >= 0 && excess > 0; i-- {
		cut := min(excess, counts[names[i]])
		counts[names[i]] -= cut
		excess -= cut
	}

	return counts
}

func applyEnvOverrides(config *Config) error {
	var err error

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && err == nil {
			var n int
			n, err = strconv.Atoi(v)
			if err != nil {
				err = fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
				return
			}
			*dst = n
		}
	}

	unsigned := func(key string, dst *uint64) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && err == nil {
			var n uint64
			n, err = strconv.ParseUint(v, 10, 64)
			if err != nil {
				err = fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
				return
			}
			*dst = n
		}
	}

	float := func(key string, dst *float64) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && err == nil {
			var f float64
			f, err = strconv.ParseFloat(v, 64)
			if err != nil {
				err = fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
				return
			}
			*dst = f
		}
	}

	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v == "true" || v == "1"
		}
	}

	integer("SIZE", &config.Network.Size)
	float("INHIBITORY_FRACTION", &config.Network.InhibitoryFraction)
	float("MEAN_DEGREE", &config.Network.MeanDegree)
	float("MEAN_STRENGTH", &config.Network.MeanStrength)
	integer("WORKERS", &config.Network.Workers)
	unsigned("SEED", &config.Run.Seed)
	unsigned("STEPS", &config.Run.Steps)
	float("INPUT_MEAN", &config.Run.InputMean)
	float("INPUT_SD", &config.Run.InputSD)
	str("OUTPUT_PREFIX", &config.Output.Prefix)
	boolean("DATABASE", &config.Output.Database)
	str("DATABASE_PATH", &config.Output.DatabasePath)
	boolean("MONITOR", &config.Monitor.Enabled)
	integer("MONITOR_PORT", &config.Monitor.Port)
	str("LOG_LEVEL", &config.Logging.Level)

	return err
}
