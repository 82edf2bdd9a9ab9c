package appdirs

import (
	"os"
	"path/filepath"
)

const (
	appDirName = "codeforge"
)

func DataDir() (string, error) {
	if override := os.Getenv("CODEFORGE_DATA_DIR"); override != "" {
		return override, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

func SecretsPath(dataDir string) string {
	return filepath.Join(dataDir, "secrets.enc")
}

func MasterKeyPath(dataDir string) string {
	return filepath.Join(dataDir, "master.key")
}
