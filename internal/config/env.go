package config

import (
	"os"
	"strconv"
)

// FromEnv overlays DATALOG_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("DATALOG_FLASH_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FlashPageSize = n
		}
	}
	if v := os.Getenv("DATALOG_PAGES_PER_BLOCK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PagesPerBlock = n
		}
	}
	if v := os.Getenv("DATALOG_MAX_TOTAL_BLOCKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTotalBlocks = n
		}
	}
	if v := os.Getenv("DATALOG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
