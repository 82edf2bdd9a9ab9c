package egress

import (
	"errors"
	"net"
	"net/http"
	"strings"
)

// ErrBlocked is returned for any request that escapes the configured backend host.
var ErrBlocked = errors.New("egress blocked")

// AllowlistRoundTripper enforces HTTPS-only requests to a fixed host allowlist.
type AllowlistRoundTripper struct {
	Base      http.RoundTripper
	Allowlist map[string]bool
}

// NewAllowlistRoundTripper returns a RoundTripper that enforces a host allowlist.
func NewAllowlistRoundTripper(base http.RoundTripper, hosts []string) *AllowlistRoundTripper {
	allowlist := make(map[string]bool, len(hosts))
	for _, host := range hosts {
		allowlist[strings.ToLower(host)] = true
	}
	return &AllowlistRoundTripper{Base: base, Allowlist: allowlist}
}

func (rt *AllowlistRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL == nil {
		return nil, ErrBlocked
	}
	if req.URL.Scheme != "https" {
		return nil, ErrBlocked
	}
	host := req.URL.Hostname()
	if host == "" {
		return nil, ErrBlocked
	}
	if ip := net.ParseIP(host); ip != nil {
		return nil, ErrBlocked
	}
	if !rt.Allowlist[strings.ToLower(host)] {
		return nil, ErrBlocked
	}
	base := rt.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
