package egress

import (
	"errors"
	"net/http"
	"testing"
)

type recordingTransport struct {
	called bool
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.called = true
	return nil, errors.New("stop here")
}

func TestRoundTripBlocksOffHostRequests(t *testing.T) {
	base := &recordingTransport{}
	rt := NewAllowlistRoundTripper(base, []string{"api.codeforge.dev"})

	blocked := []string{
		"https://evil.example.com/generate",
		"http://api.codeforge.dev/generate",
		"https://10.0.0.1/generate",
	}
	for _, url := range blocked {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		if _, err := rt.RoundTrip(req); !errors.Is(err, ErrBlocked) {
			t.Fatalf("expected %q blocked, got %v", url, err)
		}
	}
	if base.called {
		t.Fatalf("base transport must not see blocked requests")
	}
}

func TestRoundTripForwardsAllowedHost(t *testing.T) {
	base := &recordingTransport{}
	rt := NewAllowlistRoundTripper(base, []string{"API.codeforge.dev"})
	req, err := http.NewRequest(http.MethodGet, "https://api.codeforge.dev/user/status", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	_, _ = rt.RoundTrip(req)
	if !base.called {
		t.Fatalf("expected allowed request to reach base transport")
	}
}
