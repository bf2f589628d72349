// Package config provides loading and environment overlay for the DataLog
// engine's block-geometry and diagnostic settings.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file (JSON or YAML, by extension) and overlay env vars
//	if fileCfg, err := config.Load("/etc/datalog.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	blockSize := cfg.FlashPageSize * cfg.PagesPerBlock
package config
