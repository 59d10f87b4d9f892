package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent mimics a desktop Chrome so origins serve the same markup a browser would get
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPClientConfig holds the configuration for HTTPClient
type HTTPClientConfig struct {
	Timeout               time.Duration
	InsecureSkipVerify    bool
	FollowRedirects       bool
	MaxRedirects          int
	UserAgent             string
	CustomHeaders         map[string]string
	Proxy                 string
	MaxContentSize        int64 // bytes, 0 for no limit
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	MaxConnsPerHost       int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
	EnableHTTP2           bool
	Retry                 RetryHandlerConfig
}

// DefaultHTTPClientConfig returns a configuration that behaves like a desktop browser
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               30 * time.Second,
		FollowRedirects:       true,
		MaxRedirects:          10,
		UserAgent:             DefaultUserAgent,
		CustomHeaders:         BrowserHeaders(),
		MaxContentSize:        50 * 1024 * 1024,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       0,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		EnableHTTP2:           true,
		Retry:                 DefaultRetryHandlerConfig(),
	}
}

// BrowserHeaders returns the header set sent with every request unless overridden per request
func BrowserHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
		"Accept-Language":           "en-US,en;q=0.9",
		"Cache-Control":             "no-cache",
		"Pragma":                    "no-cache",
		"Sec-Ch-Ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
		"Sec-Ch-Ua-Mobile":          "?0",
		"Sec-Ch-Ua-Platform":        `"macOS"`,
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"Upgrade-Insecure-Requests": "1",
	}
}

// HTTPRequest describes a single outgoing request
type HTTPRequest struct {
	URL     string
	Method  string
	// Headers override the client defaults; an empty value drops a default
	Headers map[string]string
	Body    io.Reader
	Context context.Context
	// Timeout bounds this request only; zero falls back to the client timeout
	Timeout time.Duration
}

// HTTPResponse is a fully buffered response
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// FinalURL is the URL after redirects
	FinalURL string
	// Attempts counts requests sent, including retries
	Attempts int
}

// ContentType returns the response Content-Type header
func (r *HTTPResponse) ContentType() string {
	return r.Headers.Get("Content-Type")
}

// IsSuccess reports a 2xx status
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
