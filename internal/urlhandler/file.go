package urlhandler

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// characters that are unsafe in a filename on common filesystems
var unsafeFilenameCharsRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// CandidateFilename derives the local filename for u: the last segment of the
// URL path, query dropped. Root paths, trailing slashes and dot segments give fallback.
func CandidateFilename(u *url.URL, fallback string) string {
	if u == nil || u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return fallback
	}

	name := path.Base(u.Path)
	if name == "." || name == ".." || name == "/" {
		return fallback
	}

	name = SanitizeFilename(name)
	if name == "" {
		return fallback
	}
	return name
}

// SanitizeFilename replaces characters that cannot appear in a filename with underscores.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(unsafeFilenameCharsRegex.ReplaceAllString(name, "_"))
}

// SplitStem splits a filename into stem and extension (with its dot).
// A name that is all extension, like ".htaccess", is all stem.
func SplitStem(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if stem == "" {
		return name, ""
	}
	return stem, ext
}

// SuffixedName returns stem_n.ext
func SuffixedName(stem, ext string, n int) string {
	return stem + "_" + strconv.Itoa(n) + ext
}
