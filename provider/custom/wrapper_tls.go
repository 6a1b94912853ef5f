package custom

// The http_tls module gives scripts an HTTP client whose TLS handshake looks
// like a desktop browser's. Some catalog front ends reject the Go TLS stack.
//
//	http_tls.get(url [, headers])                        -> body
//	http_tls.request({ method, url, headers, body, cache }) -> { status, body }

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/internal/cache"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/net/http2"
)

const tlsTimeout = 30 * time.Second

func registerTLSClient(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(tlsGet))
	L.SetField(mod, "request", L.NewFunction(tlsRequest))
	L.SetGlobal("http_tls", mod)
}

type tlsResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func tableToHeaders(tbl *lua.LTable) map[string]string {
	headers := make(map[string]string)
	if tbl != nil {
		tbl.ForEach(func(k, v lua.LValue) {
			headers[k.String()] = v.String()
		})
	}
	return headers
}

func stateContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func tlsGet(L *lua.LState) int {
	url := L.CheckString(1)
	headers := tableToHeaders(L.OptTable(2, nil))

	resp, err := fingerprinted.do(stateContext(L), http.MethodGet, url, headers, "")
	if err != nil {
		L.RaiseError("http_tls.get: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(resp.Body))
	return 1
}

func tlsRequest(L *lua.LState) int {
	opts := L.CheckTable(1)

	method := strings.ToUpper(orDefault(getString(opts, "method"), http.MethodGet))
	url := getString(opts, "url")
	body := getString(opts, "body")
	cached := getBool(opts, "cache")

	if url == "" {
		L.RaiseError("http_tls.request: url is required")
		return 0
	}

	headers, _ := opts.RawGetString("headers").(*lua.LTable)

	var (
		resp tlsResponse
		key  = cache.Key(method+" "+url+"\x00"+body, "http_tls")
		hit  = cached && cache.Read(key, &resp)
	)

	if !hit {
		r, err := fingerprinted.do(stateContext(L), method, url, tableToHeaders(headers), body)
		if err != nil {
			L.RaiseError("http_tls.request: %s", err.Error())
			return 0
		}
		resp = *r

		if cached && resp.Status == http.StatusOK {
			_ = cache.Write(key, resp)
		}
	}

	result := L.NewTable()
	L.SetField(result, "status", lua.LNumber(resp.Status))
	L.SetField(result, "body", lua.LString(resp.Body))
	L.Push(result)
	return 1
}

// orDefault returns s, or fallback when s is empty.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// tlsClient tries HTTP/2 first and falls back to HTTP/1.1 when the h2
// handshake or request fails.
type tlsClient struct {
	h2Once sync.Once
	h2     *http2.Transport
	h1     *http.Transport
}

var fingerprinted = &tlsClient{
	h1: &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialFingerprinted(ctx, network, addr, []string{"http/1.1"})
		},
	},
}

func (c *tlsClient) transport2() *http2.Transport {
	c.h2Once.Do(func() {
		c.h2 = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialFingerprinted(ctx, network, addr, nil)
			},
		}
	})
	return c.h2
}

func newRequest(ctx context.Context, method, url string, headers map[string]string, body string) (*http.Request, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func (c *tlsClient) do(ctx context.Context, method, url string, headers map[string]string, body string) (*tlsResponse, error) {
	send := func(rt http.RoundTripper) (*http.Response, error) {
		req, err := newRequest(ctx, method, url, headers, body)
		if err != nil {
			return nil, err
		}
		return (&http.Client{Timeout: tlsTimeout, Transport: rt}).Do(req)
	}

	resp, err := send(c.transport2())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, err = send(c.h1)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, url, err)
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &tlsResponse{Status: resp.StatusCode, Body: string(data)}, nil
}

// dialFingerprinted opens a TLS connection with a Chrome 120 ClientHello.
// A nil protos keeps Chrome's own ALPN list.
func dialFingerprinted(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := (&net.Dialer{Timeout: tlsTimeout}).DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
