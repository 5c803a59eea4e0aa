// Package transport builds the HTTP round trippers used to reach Magento.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// Options selects the upstream transport.
type Options struct {
	// DialTimeout bounds TCP connect and TLS handshake.
	DialTimeout time.Duration

	// ChromeTLS presents Chrome's TLS fingerprint to HTTPS upstreams. Magento
	// installs behind Cloudflare or Fastly bot management rate limit Go's
	// default ClientHello.
	ChromeTLS bool
}

// New returns the RoundTripper described by opts.
func New(opts Options) http.RoundTripper {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 10 * time.Second
	}
	if !opts.ChromeTLS {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSHandshakeTimeout = opts.DialTimeout
		t.DialContext = (&net.Dialer{Timeout: opts.DialTimeout, KeepAlive: 30 * time.Second}).DialContext
		return t
	}
	return newChromeTransport(opts.DialTimeout)
}

// =============================================================================
// TLS FINGERPRINT TRANSPORT
// =============================================================================
//
// uTLS with HelloChrome_Auto produces the ClientHello; ALPN negotiates h2 or
// http/1.1 and x/net/http2 does the HTTP/2 framing. Plain http:// endpoints
// (in-cluster Magento) skip all of this and go straight to HTTP/1.1.
//
// =============================================================================

func newChromeTransport(timeout time.Duration) http.RoundTripper {
	dialer := &net.Dialer{Timeout: timeout}

	h2Transport := &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return dialChromeTLS(ctx, dialer, network, addr)
		},
	}

	h1Transport := &http.Transport{
		DialContext: dialer.DialContext,
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialChromeTLS(ctx, dialer, network, addr)
		},
		ForceAttemptHTTP2: false,
	}

	return &chromeTransport{h2: h2Transport, h1: h1Transport}
}

type chromeTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

// RoundTrip tries HTTP/2 for https URLs and falls back to HTTP/1.1 when the
// server does not speak h2. The fallback rewinds the body via GetBody.
func (t *chromeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}
	if req.Context().Err() != nil {
		return nil, err
	}

	retry := req
	if req.Body != nil && req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, fmt.Errorf("rewind body after h2 failure: %w", berr)
		}
		retry = req.Clone(req.Context())
		retry.Body = body
	}
	return t.h1.RoundTrip(retry)
}

// dialChromeTLS establishes a TLS connection with Chrome's fingerprint.
func dialChromeTLS(ctx context.Context, dialer *net.Dialer, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	tlsConn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloChrome_Auto)
	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
