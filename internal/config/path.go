package config

import (
	"os"
	"path/filepath"
)

// DefaultPartitionPath returns the default path of the flash partition
// image file used by the CLI when none is given explicitly. It prefers
// standard per-OS locations and falls back to a dotdir in the user's home
// directory.
func DefaultPartitionPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./datalog.bin"
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "datalog", "datalog.bin")
	}

	if isDir("/var/lib") {
		return "/var/lib/datalog/datalog.bin"
	}

	if isDir(filepath.Join(homeDir, "Library")) {
		return filepath.Join(homeDir, "Library", "Application Support", "DataLog", "datalog.bin")
	}

	if isDir(filepath.Join(homeDir, "AppData")) {
		return filepath.Join(homeDir, "AppData", "Local", "DataLog", "datalog.bin")
	}

	return filepath.Join(homeDir, ".datalog", "datalog.bin")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
