package fireauth

import (
	"context"
	"net"
	"net/http"
	"time"
)

// httpClientSettings configures the default transport. Only the settings a
// caller can reach through Config are exposed; the rest are fixed to values
// suited to a small number of long-lived API connections.
type httpClientSettings struct {
	Timeout     time.Duration
	DialTimeout time.Duration
}

// newHTTPClient creates the tuned HTTP client used when the configuration
// does not supply one.
func newHTTPClient(settings httpClientSettings) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{
				Timeout:   settings.DialTimeout,
				KeepAlive: 30 * time.Second,
			}
			return dialer.DialContext(ctx, network, addr)
		},
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}

	return &http.Client{
		Timeout:   settings.Timeout,
		Transport: transport,
	}
}
