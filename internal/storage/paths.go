package storage

import (
	"os"
	"path/filepath"
	"runtime"

	. "github.com/cricklet/chessrules/internal/helpers"
)

const appName = "chessrules"

// GetDataDir returns the platform's per-user data directory for the tools,
// creating it if needed.
func GetDataDir() (string, Error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", Wrap(err)
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", Wrap(err)
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", Wrap(err)
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", Wrap(err)
	}

	return dataDir, NilError
}

func GetPerftCacheDir() (string, Error) {
	dataDir, err := GetDataDir()
	if !IsNil(err) {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "perft")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", Wrap(err)
	}
	return dbDir, NilError
}
