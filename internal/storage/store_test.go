package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/aleister1102/pagemirror/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	layout := NewLayout(t.TempDir(), "index.html", config.NewDefaultLayoutConfig())
	s := NewStore(layout, "index", zerolog.Nop())
	require.NoError(t, s.Prepare())
	return s
}

func resolved(t *testing.T, category models.AssetCategory, raw string) models.ResolvedAsset {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return models.ResolvedAsset{
		Reference: models.AssetReference{Raw: raw, Category: category},
		URL:       u,
	}
}

func TestStore_Prepare(t *testing.T) {
	s := newTestStore(t)

	for _, dir := range []string{"style", "script", "image", "other"} {
		assert.DirExists(t, filepath.Join(s.Layout().Root, dir))
	}
	// existing tree is reused
	require.NoError(t, s.Prepare())
}

func TestStore_Prepare_RootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	s := NewStore(NewLayout(root, "index.html", config.NewDefaultLayoutConfig()), "index", zerolog.Nop())

	assert.Error(t, s.Prepare())
}

func TestStore_WriteDocument(t *testing.T) {
	s := newTestStore(t)
	doc := &models.Document{Body: []byte("<html>\xff raw</html>")}

	path, err := s.WriteDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(s.Layout().Root, "index.html"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Body, data)
}

func TestStore_SaveAsset(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.SaveAsset(context.Background(), resolved(t, models.AssetCategoryImage, "https://x.test/img/logo.png?v=1"), pngHeader)
	require.NoError(t, err)

	assert.Equal(t, "image", stored.Subdir)
	assert.Equal(t, "logo.png", stored.Filename)
	assert.Equal(t, len(pngHeader), stored.Size)
	assert.Equal(t, "image/png", stored.MIMEType)
	assert.False(t, stored.Renamed)
	assert.FileExists(t, filepath.Join(s.Layout().Root, "image", "logo.png"))
}

func TestStore_SaveAsset_Collisions(t *testing.T) {
	s := newTestStore(t)
	const n = 5

	var names []string
	for i := range n {
		body := []byte(fmt.Sprintf("body-%d", i))
		stored, err := s.SaveAsset(context.Background(), resolved(t, models.AssetCategoryImage, "https://x.test/icon.png"), body)
		require.NoError(t, err)
		names = append(names, stored.Filename)
		assert.Equal(t, i > 0, stored.Renamed)
	}

	assert.Equal(t, []string{"icon.png", "icon_1.png", "icon_2.png", "icon_3.png", "icon_4.png"}, names)
	// suffix order follows processing order
	data, err := os.ReadFile(filepath.Join(s.Layout().Root, "image", "icon_3.png"))
	require.NoError(t, err)
	assert.Equal(t, "body-3", string(data))
}

func TestStore_SaveAsset_NeverOverwritesExistingFiles(t *testing.T) {
	s := newTestStore(t)
	existing := filepath.Join(s.Layout().Root, "style", "styles.css")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	stored, err := s.SaveAsset(context.Background(), resolved(t, models.AssetCategoryStyle, "https://x.test/styles.css"), []byte("new"))
	require.NoError(t, err)

	assert.Equal(t, "styles_1.css", stored.Filename)
	data, _ := os.ReadFile(existing)
	assert.Equal(t, "old", string(data))
}

func TestStore_SaveAsset_FallbackName(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SaveAsset(context.Background(), resolved(t, models.AssetCategoryScript, "https://x.test/"), []byte("a"))
	require.NoError(t, err)
	second, err := s.SaveAsset(context.Background(), resolved(t, models.AssetCategoryScript, "https://x.test/lib/"), []byte("b"))
	require.NoError(t, err)

	assert.Equal(t, "index", first.Filename)
	assert.Equal(t, "index_1", second.Filename)
}

func TestStore_SaveAsset_ConcurrentWritersGetDistinctNames(t *testing.T) {
	s := newTestStore(t)
	const n = 20

	var mu sync.Mutex
	var names []string
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := s.SaveAsset(context.Background(), resolved(t, models.AssetCategoryImage, "https://x.test/bg.jpg"), []byte("x"))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			names = append(names, stored.Filename)
			mu.Unlock()
		}()
	}
	wg.Wait()

	expected := []string{"bg.jpg"}
	for i := 1; i < n; i++ {
		expected = append(expected, fmt.Sprintf("bg_%d.jpg", i))
	}
	sort.Strings(expected)
	sort.Strings(names)
	assert.Equal(t, expected, names)

	entries, err := os.ReadDir(filepath.Join(s.Layout().Root, "image"))
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func TestLayout_UnknownCategoryUsesCatchAll(t *testing.T) {
	layout := NewLayout("/out", "index.html", config.NewDefaultLayoutConfig())

	assert.Equal(t, "other", layout.Subdir(models.AssetCategory("font")))
	assert.Equal(t, filepath.Join("/out", "style"), layout.CategoryPath(models.AssetCategoryStyle))
}
