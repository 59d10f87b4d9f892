package config

import "time"

// FetcherConfig configures the shared HTTP client used for the document and every asset.
type FetcherConfig struct {
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	TimeoutSecs        int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1,max=600"`
	MaxContentSizeMB   int               `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"min=0"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0,max=50"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	Headers            map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Retry              RetryConfig       `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// RetryConfig defines configuration for HTTP request retries
type RetryConfig struct {
	// Extra attempts after the first one; 0 keeps single-attempt semantics
	MaxRetries   int  `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"min=0,max=10"`
	BaseDelayMs  int  `json:"base_delay_ms,omitempty" yaml:"base_delay_ms,omitempty" validate:"min=0,max=60000"`
	MaxDelayMs   int  `json:"max_delay_ms,omitempty" yaml:"max_delay_ms,omitempty" validate:"min=0,max=600000"`
	EnableJitter bool `json:"enable_jitter" yaml:"enable_jitter"`
	// HTTP status codes that should trigger retries
	RetryStatusCodes []int `json:"retry_status_codes,omitempty" yaml:"retry_status_codes,omitempty" validate:"dive,min=100,max=599"`
}

// NewDefaultFetcherConfig creates default fetcher configuration
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		UserAgent:        DefaultFetcherUserAgent,
		TimeoutSecs:      DefaultFetcherTimeoutSecs,
		MaxContentSizeMB: DefaultFetcherMaxContentSizeMB,
		FollowRedirects:  DefaultFetcherFollowRedirects,
		MaxRedirects:     DefaultFetcherMaxRedirects,
		EnableHTTP2:      DefaultFetcherEnableHTTP2,
		Headers:          map[string]string{},
		Retry:            NewDefaultRetryConfig(),
	}
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:       DefaultRetryMaxRetries,
		BaseDelayMs:      DefaultRetryBaseDelayMs,
		MaxDelayMs:       DefaultRetryMaxDelayMs,
		EnableJitter:     DefaultRetryEnableJitter,
		RetryStatusCodes: []int{429, 502, 503, 504},
	}
}

// Timeout returns the per-request timeout
func (fc FetcherConfig) Timeout() time.Duration {
	return time.Duration(fc.TimeoutSecs) * time.Second
}

// MaxContentSize returns the body size limit in bytes, 0 for unlimited
func (fc FetcherConfig) MaxContentSize() int {
	return fc.MaxContentSizeMB * 1024 * 1024
}
