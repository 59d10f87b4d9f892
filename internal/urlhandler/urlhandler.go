package urlhandler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
	"github.com/aleister1102/pagemirror/internal/models"
)

// NormalizeTargetURL validates a user-supplied page URL, adding https:// when no scheme is given.
func NormalizeTargetURL(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", errorwrapper.NewValidationError("url", rawURL, "URL is empty or only whitespace")
	}

	if !strings.Contains(trimmedURL, "://") {
		trimmedURL = "https://" + strings.TrimPrefix(trimmedURL, "//")
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return "", errorwrapper.WrapErrorf(err, "could not parse URL '%s'", trimmedURL)
	}
	if !IsFetchable(parsedURL) {
		return "", errorwrapper.WrapErrorf(errorwrapper.ErrUnfetchableScheme, "URL '%s'", trimmedURL)
	}
	if parsedURL.Host == "" {
		return "", errorwrapper.NewValidationError("url", rawURL, "URL lacks a valid hostname")
	}

	return parsedURL.String(), nil
}

// ResolveReference resolves a raw reference against base per RFC 3986.
// Surrounding whitespace is ignored.
func ResolveReference(raw string, base *url.URL) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("reference is empty")
	}

	ref, err := url.Parse(trimmed)
	if err != nil {
		return nil, errorwrapper.WrapErrorf(err, "could not parse reference '%s'", trimmed)
	}
	if base == nil {
		if !ref.IsAbs() {
			return nil, fmt.Errorf("cannot resolve relative reference '%s' without a base URL", trimmed)
		}
		return ref, nil
	}
	return base.ResolveReference(ref), nil
}

// Resolve turns ref into a ResolvedAsset. A result outside http/https returns an
// error wrapping errorwrapper.ErrUnfetchableScheme; callers skip those silently.
func Resolve(ref models.AssetReference) (models.ResolvedAsset, error) {
	resolved, err := ResolveReference(ref.Raw, ref.Origin)
	if err != nil {
		return models.ResolvedAsset{}, err
	}
	if !IsFetchable(resolved) {
		return models.ResolvedAsset{}, errorwrapper.WrapErrorf(errorwrapper.ErrUnfetchableScheme, "scheme %q", resolved.Scheme)
	}
	if resolved.Host == "" {
		return models.ResolvedAsset{}, fmt.Errorf("resolved URL '%s' has no host", resolved)
	}

	return models.ResolvedAsset{Reference: ref, URL: resolved}, nil
}

// Scheme returns the lower-cased scheme raw would resolve to against base, or "" if unparseable.
func Scheme(raw string, base *url.URL) string {
	resolved, err := ResolveReference(raw, base)
	if err != nil {
		return ""
	}
	return strings.ToLower(resolved.Scheme)
}

// IsFetchable reports whether u uses http or https
func IsFetchable(u *url.URL) bool {
	if u == nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}

// HostKey returns lower-cased hostname:port, filling in the scheme's default port.
// Requests sharing a key share one politeness budget.
func HostKey(u *url.URL) string {
	hostname := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" {
		switch strings.ToLower(u.Scheme) {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return hostname + ":" + port
}
