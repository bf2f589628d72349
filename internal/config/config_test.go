package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.FlashPageSize != 4096 {
		t.Fatalf("default flash page size")
	}
	if cfg.PagesPerBlock != 4 {
		t.Fatalf("default pages per block")
	}
	if cfg.BlockSize() != 16384 {
		t.Fatalf("default block size, got %d", cfg.BlockSize())
	}
	if cfg.MaxTotalBlocks != 0 {
		t.Fatalf("default max total blocks should be unclamped")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "datalog.json")
	data := []byte(`{"flashPageSize":512,"pagesPerBlock":1,"maxTotalBlocks":4,"logLevel":"debug"}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BlockSize() != 512 {
		t.Fatalf("expected block size 512, got %d", cfg.BlockSize())
	}
	if cfg.MaxTotalBlocks != 4 {
		t.Fatalf("expected max total blocks 4, got %d", cfg.MaxTotalBlocks)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "datalog.yaml")
	data := []byte("flashPageSize: 1024\npagesPerBlock: 2\nmaxTotalBlocks: 8\nlogLevel: warn\n")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BlockSize() != 2048 {
		t.Fatalf("expected block size 2048, got %d", cfg.BlockSize())
	}
	if cfg.MaxTotalBlocks != 8 {
		t.Fatalf("expected max total blocks 8, got %d", cfg.MaxTotalBlocks)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected warn log level")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults for empty path")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("DATALOG_FLASH_PAGE_SIZE", "256")
	os.Setenv("DATALOG_PAGES_PER_BLOCK", "2")
	os.Setenv("DATALOG_MAX_TOTAL_BLOCKS", "4")
	os.Setenv("DATALOG_LOG_LEVEL", "error")
	t.Cleanup(func() {
		os.Unsetenv("DATALOG_FLASH_PAGE_SIZE")
		os.Unsetenv("DATALOG_PAGES_PER_BLOCK")
		os.Unsetenv("DATALOG_MAX_TOTAL_BLOCKS")
		os.Unsetenv("DATALOG_LOG_LEVEL")
	})
	FromEnv(&cfg)
	if cfg.BlockSize() != 512 {
		t.Fatalf("expected block size 512 after env overlay, got %d", cfg.BlockSize())
	}
	if cfg.MaxTotalBlocks != 4 {
		t.Fatalf("expected max total blocks 4 after env overlay")
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("expected error log level after env overlay")
	}
}
