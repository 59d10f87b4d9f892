package fetcher

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"time"

	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
	"github.com/aleister1102/pagemirror/internal/models"
	"golang.org/x/net/html/charset"
)

// FetchDocument retrieves the root document. Any failure here is fatal to a
// mirror run, so a non-2xx status is returned as an *errorwrapper.HTTPError.
func FetchDocument(ctx context.Context, f Fetcher, location string, timeout time.Duration) (*models.Document, error) {
	target, err := url.Parse(location)
	if err != nil {
		return nil, errorwrapper.WrapErrorf(err, "invalid document URL %q", location)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, errorwrapper.WrapErrorf(errorwrapper.ErrUnfetchableScheme, "document URL %q", location)
	}

	result, err := f.Fetch(ctx, target.String(), DocumentHeaders(), timeout)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to fetch document")
	}
	if !result.IsSuccess() {
		return nil, errorwrapper.NewHTTPError(result.StatusCode, target.String())
	}

	// relative references resolve against where the document actually lives
	docURL := target
	if result.FinalURL != "" {
		if final, err := url.Parse(result.FinalURL); err == nil {
			docURL = final
		}
	}

	return &models.Document{
		URL:         docURL,
		StatusCode:  result.StatusCode,
		ContentType: result.ContentType,
		Body:        result.Body,
		Text:        DecodeText(result.Body, result.ContentType),
		FetchedAt:   time.Now(),
	}, nil
}

// DecodeText converts body to UTF-8 using the Content-Type charset, a <meta>
// declaration or content sniffing. Undecodable input is returned as is.
func DecodeText(body []byte, contentType string) string {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
