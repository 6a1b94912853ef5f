// Package network holds the HTTP client shared by content sources.
package network

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/constant"
	"golang.org/x/net/publicsuffix"
)

// Client is shared by every built-in source. Its jar keeps the session
// cookies a catalog front end hands out between requests.
var Client = New(time.Minute)

// New returns a client with its own cookie jar. Requests that carry no
// User-Agent are sent with constant.UserAgent.
func New(timeout time.Duration) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.MaxIdleConnsPerHost = 16
	base.IdleConnTimeout = 45 * time.Second
	base.ResponseHeaderTimeout = 20 * time.Second

	return &http.Client{
		Timeout:   timeout,
		Transport: agent{next: base},
		Jar:       NewJar(),
	}
}

// NewJar returns a cookie jar scoped by the public suffix list.
func NewJar() http.CookieJar {
	return lo.Must(cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}))
}

type agent struct {
	next http.RoundTripper
}

func (a agent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return a.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return a.next.RoundTrip(req)
}
