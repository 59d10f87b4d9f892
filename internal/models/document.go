package models

import (
	"net/url"
	"time"
)

// Document is the fetched root page. Body is kept verbatim; Text is the
// charset-decoded form handed to the extractor.
type Document struct {
	URL         *url.URL
	StatusCode  int
	ContentType string
	Body        []byte
	Text        string
	FetchedAt   time.Time
}

// Location returns the document URL as a string
func (d *Document) Location() string {
	if d == nil || d.URL == nil {
		return ""
	}
	return d.URL.String()
}
