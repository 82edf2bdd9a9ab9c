package cli

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"

	"codeforge/internal/appdirs"
	"codeforge/internal/secrets"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.Execute()
}

func openStore(t *testing.T, dataDir string) *secrets.Store {
	t.Helper()
	return secrets.NewStore(appdirs.SecretsPath(dataDir), appdirs.MasterKeyPath(dataDir))
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()
	want := map[string]bool{"generate": false, "status": false, "token": false, "signup": false, "version": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, seen := range want {
		require.True(t, seen, "missing subcommand %q", name)
	}
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), Version)
}

func TestTokenSetAndClearPersist(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("CODEFORGE_DATA_DIR", dataDir)

	require.NoError(t, run(t, "token", "set", "tok-cli-12345"))
	stored, err := openStore(t, dataDir).GetToken()
	require.NoError(t, err)
	require.Equal(t, "tok-cli-12345", stored)

	require.NoError(t, run(t, "token", "clear"))
	stored, err = openStore(t, dataDir).GetToken()
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestTokenSetRejectsEmpty(t *testing.T) {
	t.Setenv("CODEFORGE_DATA_DIR", t.TempDir())
	require.Error(t, run(t, "token", "set", "   "))
}

func TestSignupStoresIssuedToken(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("CODEFORGE_DATA_DIR", dataDir)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/create", r.URL.Path)
		require.Equal(t, "dev@example.com", r.URL.Query().Get("email"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"User created","api_token":"tok-issued","tier":"free","credits":100}`))
	}))
	defer server.Close()
	t.Setenv("CODEFORGE_BASE_URL", server.URL)

	require.NoError(t, run(t, "signup", "dev@example.com"))
	stored, err := openStore(t, dataDir).GetToken()
	require.NoError(t, err)
	require.Equal(t, "tok-issued", stored)
}

func TestSignupExistingAccountKeepsStoreEmpty(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("CODEFORGE_DATA_DIR", dataDir)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"User already exists"}`))
	}))
	defer server.Close()
	t.Setenv("CODEFORGE_BASE_URL", server.URL)

	require.Error(t, run(t, "signup", "dev@example.com"))
	stored, err := openStore(t, dataDir).GetToken()
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestSignupRejectsNonEmail(t *testing.T) {
	t.Setenv("CODEFORGE_DATA_DIR", t.TempDir())
	require.Error(t, run(t, "signup", "not-an-email"))
}

func TestRenderMarkdownFallsBackToRawContent(t *testing.T) {
	content := "plain text, no markdown"
	rendered := renderMarkdown(content)
	require.NotEmpty(t, rendered)
}

func TestIsCanceledCoversPromptAborts(t *testing.T) {
	require.True(t, isCanceled(promptui.ErrInterrupt))
	require.True(t, isCanceled(promptui.ErrEOF))
	require.False(t, isCanceled(errors.New("prompt exploded")))
}
