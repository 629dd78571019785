package ownhttp

import (
	"fmt"
	"net/http"
	"runtime"
)

// UserAgent is sent with every request made through this package
var UserAgent = fmt.Sprintf(
	"minefetch/1 (%s; %s)",
	runtime.GOOS,
	runtime.GOARCH,
)

// AddHeaderTransport sets the User-Agent header on every request
type AddHeaderTransport struct {
	T http.RoundTripper
}

func (t *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	return t.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps the given transport (or http.DefaultTransport)
func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T}
}
