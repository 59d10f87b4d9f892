package mirror

import (
	"time"

	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/aleister1102/pagemirror/internal/extractor"
	"github.com/aleister1102/pagemirror/internal/fetcher"
	"github.com/aleister1102/pagemirror/internal/httpclient"
	"github.com/aleister1102/pagemirror/internal/ratelimit"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MirrorBuilder provides a fluent interface for creating Mirror instances
type MirrorBuilder struct {
	config  *config.GlobalConfig
	fetcher fetcher.Fetcher
	parser  extractor.Parser
	runID   string
	logger  zerolog.Logger
}

// NewMirrorBuilder creates a new MirrorBuilder instance
func NewMirrorBuilder(logger zerolog.Logger) *MirrorBuilder {
	return &MirrorBuilder{
		logger: logger,
	}
}

// WithConfig sets the configuration
func (mb *MirrorBuilder) WithConfig(cfg *config.GlobalConfig) *MirrorBuilder {
	mb.config = cfg
	return mb
}

// WithFetcher replaces the HTTP fetcher built from FetcherConfig
func (mb *MirrorBuilder) WithFetcher(f fetcher.Fetcher) *MirrorBuilder {
	mb.fetcher = f
	return mb
}

// WithParser replaces the default goquery parser
func (mb *MirrorBuilder) WithParser(p extractor.Parser) *MirrorBuilder {
	mb.parser = p
	return mb
}

// WithRunID fixes the run ID instead of generating one
func (mb *MirrorBuilder) WithRunID(runID string) *MirrorBuilder {
	mb.runID = runID
	return mb
}

// Build creates a new Mirror instance with the configured settings
func (mb *MirrorBuilder) Build() (*Mirror, error) {
	if mb.config == nil {
		return nil, errorwrapper.NewValidationError("config", nil, "mirror config cannot be nil")
	}
	if err := config.ValidateConfig(mb.config); err != nil {
		return nil, errorwrapper.WrapError(err, "invalid mirror configuration")
	}

	logger := mb.logger.With().Str("module", "Mirror").Logger()
	runID := mb.runID
	if runID == "" {
		// a caller-supplied ID is already on the caller's logger
		runID = uuid.NewString()
		logger = logger.With().Str("run_id", runID).Logger()
	}

	f := mb.fetcher
	if f == nil {
		client, err := newHTTPClient(mb.config.FetcherConfig, logger)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to create HTTP client")
		}
		f = fetcher.NewHTTPFetcher(client, logger)
	}

	mirrorCfg := mb.config.MirrorConfig
	return &Mirror{
		config:    mirrorCfg,
		timeout:   mb.config.FetcherConfig.Timeout(),
		runID:     runID,
		fetcher:   f,
		extractor: extractor.NewReferenceExtractor(mb.parser, logger),
		limiter:   ratelimit.NewHostLimiter(mirrorCfg.HostDelay(), mirrorCfg.HostBurst, logger),
		logger:    logger,
	}, nil
}

// newHTTPClient maps FetcherConfig onto the shared HTTP client
func newHTTPClient(cfg config.FetcherConfig, logger zerolog.Logger) (*httpclient.HTTPClient, error) {
	retry := httpclient.DefaultRetryHandlerConfig()
	retry.MaxRetries = cfg.Retry.MaxRetries
	retry.BaseDelay = durationMs(cfg.Retry.BaseDelayMs)
	retry.MaxDelay = durationMs(cfg.Retry.MaxDelayMs)
	retry.EnableJitter = cfg.Retry.EnableJitter
	if len(cfg.Retry.RetryStatusCodes) > 0 {
		retry.RetryStatusCodes = cfg.Retry.RetryStatusCodes
	}

	return httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(cfg.Timeout()).
		WithUserAgent(cfg.UserAgent).
		WithHeaders(cfg.Headers).
		WithFollowRedirects(cfg.FollowRedirects).
		WithMaxRedirects(cfg.MaxRedirects).
		WithInsecureSkipVerify(cfg.InsecureSkipVerify).
		WithHTTP2(cfg.EnableHTTP2).
		WithProxy(cfg.Proxy).
		WithMaxContentSize(int64(cfg.MaxContentSize())).
		WithRetry(retry).
		Build()
}

func durationMs(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
