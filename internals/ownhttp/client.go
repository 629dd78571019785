package ownhttp

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// New returns a http.Client suited for bulk artifact downloads:
// the User-Agent header is set and the transport has sane timeouts
// for large, slow file servers.
func New() *http.Client {
	transport := &http.Transport{
		Dial: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).Dial,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{Transport: NewAddHeaderTransport(transport)}
}

// NewThrottled is like New but rate-limits outgoing requests.
// Useful against metadata servers that dislike request bursts.
func NewThrottled(rps rate.Limit, burst int) *http.Client {
	base := NewAddHeaderTransport(nil)
	limiter := rate.NewLimiter(rps, burst)
	return &http.Client{Transport: NewThrottleTransport(base, limiter)}
}
