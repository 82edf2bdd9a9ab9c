// Package workspace resolves the directory generated artifacts land in.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("workspace not found")

// Resolve returns the absolute workspace root. An empty override means the
// current working directory. The root must be an existing directory.
func Resolve(override string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrNotFound, abs)
	}
	return abs, nil
}
