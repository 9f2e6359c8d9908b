// Package http builds outbound HTTP clients with sane timeouts.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client for talking to external services.
// http.DefaultClient carries no timeout at all, so every outbound call
// must go through a client built here.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
