package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPathSetsMissingKeysOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nexport CODEFORGE_ENVFILE_A=\"alpha\"\nCODEFORGE_ENVFILE_B='beta'\nCODEFORGE_ENVFILE_C=gamma\nBROKENLINE\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CODEFORGE_ENVFILE_C", "preset")

	res := LoadPath(path)
	if res.Err != nil {
		t.Fatalf("load: %v", res.Err)
	}
	if !res.Loaded {
		t.Fatalf("expected file to load")
	}
	if res.Keys != 2 {
		t.Fatalf("expected 2 keys set, got %d", res.Keys)
	}
	if got := os.Getenv("CODEFORGE_ENVFILE_A"); got != "alpha" {
		t.Fatalf("expected alpha, got %q", got)
	}
	if got := os.Getenv("CODEFORGE_ENVFILE_B"); got != "beta" {
		t.Fatalf("expected beta, got %q", got)
	}
	if got := os.Getenv("CODEFORGE_ENVFILE_C"); got != "preset" {
		t.Fatalf("existing env must win, got %q", got)
	}
	t.Cleanup(func() {
		os.Unsetenv("CODEFORGE_ENVFILE_A")
		os.Unsetenv("CODEFORGE_ENVFILE_B")
	})
}

func TestLoadHonorsPathOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	if err := os.WriteFile(path, []byte("CODEFORGE_ENVFILE_D=delta\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CODEFORGE_ENV_PATH", path)
	res := Load()
	if res.Path != path {
		t.Fatalf("expected override path, got %q", res.Path)
	}
	if got := os.Getenv("CODEFORGE_ENVFILE_D"); got != "delta" {
		t.Fatalf("expected delta, got %q", got)
	}
	t.Cleanup(func() { os.Unsetenv("CODEFORGE_ENVFILE_D") })
}
