package urlhandler

import (
	"errors"
	"net/url"
	"testing"

	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
	"github.com/aleister1102/pagemirror/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestResolve(t *testing.T) {
	origin := mustParse(t, "https://x.test/a/b.html")

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"parent directory", "../c.png", "https://x.test/c.png"},
		{"sibling", "c.png", "https://x.test/a/c.png"},
		{"root relative", "/static/app.js", "https://x.test/static/app.js"},
		{"protocol relative", "//cdn.x.test/lib.js", "https://cdn.x.test/lib.js"},
		{"absolute", "http://other.test/s.css", "http://other.test/s.css"},
		{"query kept", "img/logo.png?v=3", "https://x.test/a/img/logo.png?v=3"},
		{"fragment kept", "sprite.svg#icon", "https://x.test/a/sprite.svg#icon"},
		{"query only", "?page=2", "https://x.test/a/b.html?page=2"},
		{"surrounding whitespace", "  c.png\n", "https://x.test/a/c.png"},
		{"dot segments", "./d/../e.png", "https://x.test/a/e.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := models.AssetReference{Raw: tt.raw, Category: models.AssetCategoryImage, Origin: origin}

			resolved, err := Resolve(ref)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, resolved.Location())
			assert.Equal(t, models.AssetCategoryImage, resolved.Category())
		})
	}
}

func TestResolve_UnfetchableSchemes(t *testing.T) {
	origin := mustParse(t, "https://x.test/")

	for _, raw := range []string{
		"data:image/png;base64,AAAA",
		"javascript:void(0)",
		"mailto:someone@x.test",
		"tel:+123",
		"ftp://x.test/file",
	} {
		_, err := Resolve(models.AssetReference{Raw: raw, Origin: origin})
		assert.True(t, errors.Is(err, errorwrapper.ErrUnfetchableScheme), raw)
	}
}

func TestResolve_UnparseableIsAnError(t *testing.T) {
	_, err := Resolve(models.AssetReference{Raw: "http://[::1", Origin: mustParse(t, "https://x.test/")})

	require.Error(t, err)
	assert.False(t, errors.Is(err, errorwrapper.ErrUnfetchableScheme))
}

func TestScheme(t *testing.T) {
	base := mustParse(t, "https://x.test/")
	assert.Equal(t, "data", Scheme("DATA:text/plain,hi", base))
	assert.Equal(t, "https", Scheme("a.png", base))
}

func TestNormalizeTargetURL(t *testing.T) {
	got, err := NormalizeTargetURL("example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page", got)

	got, err = NormalizeTargetURL("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", got)

	_, err = NormalizeTargetURL("  ")
	assert.Error(t, err)

	_, err = NormalizeTargetURL("ftp://example.com/")
	assert.ErrorIs(t, err, errorwrapper.ErrUnfetchableScheme)
}

func TestHostKey(t *testing.T) {
	assert.Equal(t, "x.test:443", HostKey(mustParse(t, "https://X.test/a")))
	assert.Equal(t, "x.test:80", HostKey(mustParse(t, "http://x.test/a")))
	assert.Equal(t, "127.0.0.1:8080", HostKey(mustParse(t, "http://127.0.0.1:8080/")))
}

func TestCandidateFilename(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"https://x.test/img/logo.png", "logo.png"},
		{"https://x.test/img/logo.png?v=2&x=1", "logo.png"},
		{"https://x.test/", "index"},
		{"https://x.test", "index"},
		{"https://x.test/assets/", "index"},
		{"https://x.test/a/..", "index"},
		{"https://x.test/dist/app", "app"},
		{"https://x.test/fonts/my%20font.woff2", "my font.woff2"},
		{"https://x.test/weird/a%3Ab.css", "a_b.css"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, CandidateFilename(mustParse(t, tt.raw), "index"))
		})
	}
}

func TestSplitStem(t *testing.T) {
	tests := []struct {
		name, stem, ext string
	}{
		{"icon.png", "icon", ".png"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"index", "index", ""},
		{".htaccess", ".htaccess", ""},
	}
	for _, tt := range tests {
		stem, ext := SplitStem(tt.name)
		assert.Equal(t, tt.stem, stem, tt.name)
		assert.Equal(t, tt.ext, ext, tt.name)
	}

	assert.Equal(t, "icon_2.png", SuffixedName("icon", ".png", 2))
	assert.Equal(t, "index_1", SuffixedName("index", "", 1))
}
