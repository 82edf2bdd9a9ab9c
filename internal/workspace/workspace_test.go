package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaultsToWorkingDirectory(t *testing.T) {
	dir, err := Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if dir != cwd {
		t.Fatalf("expected cwd %q, got %q", cwd, dir)
	}
}

func TestResolveRejectsMissingDirectory(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveRejectsFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := Resolve(path)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
