package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config controls the block geometry and diagnostics of a DataLog engine
// instance. It is deliberately small: the partition's physical size is
// reported by the Partition adapter itself, not configured here.
type Config struct {
	// FlashPageSize is the size in bytes of one physical flash page.
	FlashPageSize int `json:"flashPageSize" yaml:"flashPageSize"`
	// PagesPerBlock is the number of flash pages per log block. Block size
	// is FlashPageSize * PagesPerBlock.
	PagesPerBlock int `json:"pagesPerBlock" yaml:"pagesPerBlock"`
	// MaxTotalBlocks optionally clamps the number of blocks the engine will
	// use, for faster tests against a large partition. Zero means
	// unclamped: use floor(partition size / block size).
	MaxTotalBlocks int `json:"maxTotalBlocks" yaml:"maxTotalBlocks"`
	// LogLevel is the diagnostic sink's minimum level: debug|info|warn|error.
	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

// Default returns built-in defaults: a 4KiB flash page and 4 pages per
// block, giving the nominal 16KiB block size from spec §3.
func Default() Config {
	return Config{
		FlashPageSize:  4096,
		PagesPerBlock:  4,
		MaxTotalBlocks: 0,
		LogLevel:       "info",
	}
}

// BlockSize returns the configured block size in bytes.
func (c Config) BlockSize() int {
	return c.FlashPageSize * c.PagesPerBlock
}

// Load reads configuration from a JSON or YAML file (selected by
// extension). If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
