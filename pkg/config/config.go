package config

import (
	// stdlib
	"errors"
	"fmt"
	"os"

	// internal
	"github.com/Robogera/gcoll/pkg/enums"

	// external
	"github.com/pelletier/go-toml/v2"
)

var (
	ERR_INVALID_VALUE = errors.New("Invalid config value")
)

// Config file structure

type ConfigFile struct {
	Soak    SoakConfig
	Logging LoggingConfig
}

type SoakConfig struct {
	Containers []string
	Operations uint
	Seed       uint64
	// upper bound the random workload steers container sizes toward
	MaxLen        uint `toml:"max_len"`
	ValidateEvery uint `toml:"validate_every"`
	BatchSize     uint `toml:"batch_size"`
}

type LoggingConfig struct {
	Level         string
	StatPeriodSec uint `toml:"stat_period_sec"`
	StatWindow    uint `toml:"stat_window"`
}

func Default() *ConfigFile {
	return &ConfigFile{
		Soak: SoakConfig{
			Containers: []string{
				enums.ContainerHeap.Value,
				enums.ContainerSList.Value,
				enums.ContainerDList.Value,
			},
			Operations:    1_000_000,
			Seed:          1,
			MaxLen:        4096,
			ValidateEvery: 10_000,
			BatchSize:     1000,
		},
		Logging: LoggingConfig{
			Level:         enums.LoggingLevelInfo.Value,
			StatPeriodSec: 1,
			StatWindow:    64,
		},
	}
}

func Unmarshal(file_path string) (*ConfigFile, error) {
	config_file := Default()
	data, err := os.ReadFile(file_path)
	if err != nil {
		return nil,
			fmt.Errorf("Unable to read %s error: %w", file_path, err)
	}
	err = toml.Unmarshal(data, config_file)
	if err != nil {
		return nil,
			fmt.Errorf("Unable to unmarshal %s error: %w", file_path, err)
	}
	if err = config_file.Validate(); err != nil {
		return nil,
			fmt.Errorf("Invalid config %s error: %w", file_path, err)
	}
	return config_file, nil
}

func CreateDefault(file_path string) error {
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("Unable to marshal default config error: %w", err)
	}
	err = os.WriteFile(file_path, data, 0o644)
	if err != nil {
		return fmt.Errorf("Unable to write %s error: %w", file_path, err)
	}
	return nil
}

func (c *ConfigFile) Validate() error {
	if len(c.Soak.Containers) == 0 {
		return fmt.Errorf("No containers selected: %w", ERR_INVALID_VALUE)
	}
	for _, name := range c.Soak.Containers {
		if enums.ContainerKinds.Parse(name) == nil {
			return fmt.Errorf(
				"Unknown container %q, expected one of %v: %w",
				name, enums.ContainerKinds.Values(), ERR_INVALID_VALUE)
		}
	}
	if enums.LoggingLevels.Parse(c.Logging.Level) == nil {
		return fmt.Errorf(
			"Unknown logging level %q, expected one of %v: %w",
			c.Logging.Level, enums.LoggingLevels.Values(), ERR_INVALID_VALUE)
	}
	if c.Soak.MaxLen == 0 {
		return fmt.Errorf("max_len must be positive: %w", ERR_INVALID_VALUE)
	}
	if c.Soak.BatchSize == 0 {
		return fmt.Errorf("batch_size must be positive: %w", ERR_INVALID_VALUE)
	}
	if c.Logging.StatPeriodSec == 0 || c.Logging.StatWindow == 0 {
		return fmt.Errorf("stat_period_sec and stat_window must be positive: %w", ERR_INVALID_VALUE)
	}
	return nil
}
