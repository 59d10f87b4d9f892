// Package fetcher retrieves documents and assets over HTTP with
// category-specific content negotiation.
package fetcher

import (
	"context"
	"time"

	"github.com/aleister1102/pagemirror/internal/httpclient"
	"github.com/aleister1102/pagemirror/internal/models"
	"github.com/rs/zerolog"
)

// Accept header values per asset category, matching what a browser sends.
const (
	AcceptDocument = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
	AcceptStyle    = "text/css,*/*;q=0.1"
	AcceptScript   = "*/*"
	AcceptImage    = "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8"
)

// FetchResult is the outcome of one request that produced an HTTP response.
type FetchResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
	// FinalURL is the location after redirects
	FinalURL    string
	Attempts    int
}

// IsSuccess reports a 2xx status
func (r *FetchResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves a location. A returned error means no usable response
// (network failure, cancellation, oversized body); any status code is a result.
type Fetcher interface {
	Fetch(ctx context.Context, location string, headers map[string]string, timeout time.Duration) (*FetchResult, error)
}

// HTTPFetcher implements Fetcher on top of the shared HTTP client
type HTTPFetcher struct {
	client *httpclient.HTTPClient
	logger zerolog.Logger
}

// NewHTTPFetcher creates a fetcher that sends every request through client
func NewHTTPFetcher(client *httpclient.HTTPClient, logger zerolog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: client,
		logger: logger.With().Str("component", "Fetcher").Logger(),
	}
}

// Fetch performs a GET for location
func (f *HTTPFetcher) Fetch(ctx context.Context, location string, headers map[string]string, timeout time.Duration) (*FetchResult, error) {
	resp, err := f.client.Do(&httpclient.HTTPRequest{
		URL:     location,
		Method:  "GET",
		Headers: headers,
		Context: ctx,
		Timeout: timeout,
	})
	if err != nil {
		f.logger.Debug().Err(err).Str("url", location).Msg("Request failed")
		return nil, err
	}

	f.logger.Debug().
		Str("url", location).
		Int("status_code", resp.StatusCode).
		Int("bytes", len(resp.Body)).
		Int("attempts", resp.Attempts).
		Msg("Response received")

	return &FetchResult{
		StatusCode:  resp.StatusCode,
		Body:        resp.Body,
		ContentType: resp.ContentType(),
		FinalURL:    resp.FinalURL,
		Attempts:    resp.Attempts,
	}, nil
}

// HeadersFor returns the per-request headers for retrieving an asset of category
func HeadersFor(category models.AssetCategory) map[string]string {
	// subresource loads carry no navigation headers
	headers := map[string]string{
		"Sec-Fetch-Mode":            "no-cors",
		"Sec-Fetch-User":            "",
		"Upgrade-Insecure-Requests": "",
	}

	switch category {
	case models.AssetCategoryStyle:
		headers["Accept"] = AcceptStyle
		headers["Sec-Fetch-Dest"] = "style"
	case models.AssetCategoryScript:
		headers["Accept"] = AcceptScript
		headers["Sec-Fetch-Dest"] = "script"
	case models.AssetCategoryImage:
		headers["Accept"] = AcceptImage
		headers["Sec-Fetch-Dest"] = "image"
	default:
		headers["Accept"] = "*/*"
		headers["Sec-Fetch-Dest"] = "empty"
	}
	return headers
}

// DocumentHeaders returns the per-request headers for the root document
func DocumentHeaders() map[string]string {
	return map[string]string{
		"Accept":         AcceptDocument,
		"Sec-Fetch-Dest": "document",
		"Sec-Fetch-Mode": "navigate",
	}
}
