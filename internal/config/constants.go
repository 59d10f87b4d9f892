package config

const (
	// Mirror Defaults
	DefaultMirrorOutputDir      = "mirror"
	DefaultMirrorDocumentName   = "index.html"
	DefaultMirrorConcurrency    = 4
	DefaultMirrorHostDelayMs    = 500
	DefaultMirrorHostBurst      = 1
	DefaultMirrorFallbackName   = "index"
	DefaultMirrorMaxAssets      = 0 // 0 means no limit
	DefaultMirrorStyleDir       = "style"
	DefaultMirrorScriptDir      = "script"
	DefaultMirrorImageDir       = "image"
	DefaultMirrorOtherDir       = "other"
	DefaultMirrorFilePermission = 0o644
	DefaultMirrorDirPermission  = 0o755

	// Fetcher Defaults
	DefaultFetcherUserAgent        = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultFetcherTimeoutSecs      = 30
	DefaultFetcherMaxContentSizeMB = 50
	DefaultFetcherMaxRedirects     = 10
	DefaultFetcherFollowRedirects  = true
	DefaultFetcherEnableHTTP2      = true

	// Retry Defaults (single attempt unless configured)
	DefaultRetryMaxRetries   = 0
	DefaultRetryBaseDelayMs  = 500
	DefaultRetryMaxDelayMs   = 10000
	DefaultRetryEnableJitter = true

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// ConfigPathEnv overrides config file discovery
	ConfigPathEnv = "PAGEMIRROR_CONFIG_PATH"
)
