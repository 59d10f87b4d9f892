// Package storage writes the mirrored document and assets into the output tree.
package storage

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
	"github.com/aleister1102/pagemirror/internal/common/filemanager"
	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/aleister1102/pagemirror/internal/models"
	"github.com/aleister1102/pagemirror/internal/urlhandler"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// Store owns the output directory tree of one mirror run.
type Store struct {
	layout       Layout
	fallbackName string
	filePerm     fs.FileMode
	dirPerm      fs.FileMode
	fileManager  *filemanager.FileManager
	registry     *NameRegistry
	logger       zerolog.Logger
}

// NewStore creates a store for layout. fallbackName is used for URLs without a last path segment.
func NewStore(layout Layout, fallbackName string, logger zerolog.Logger) *Store {
	componentLogger := logger.With().Str("component", "Store").Logger()
	return &Store{
		layout:       layout,
		fallbackName: fallbackName,
		filePerm:     config.DefaultMirrorFilePermission,
		dirPerm:      config.DefaultMirrorDirPermission,
		fileManager:  filemanager.NewFileManager(componentLogger),
		registry:     NewNameRegistry(componentLogger),
		logger:       componentLogger,
	}
}

// Layout returns the store's layout
func (s *Store) Layout() Layout {
	return s.layout
}

// Prepare creates the root and every category subdirectory. Existing directories are reused.
func (s *Store) Prepare() error {
	if err := s.fileManager.EnsureDirectory(s.layout.Root, s.dirPerm); err != nil {
		return errorwrapper.WrapError(err, "failed to create output root")
	}
	for _, category := range models.AllAssetCategories() {
		if err := s.fileManager.EnsureDirectory(s.layout.CategoryPath(category), s.dirPerm); err != nil {
			return errorwrapper.WrapErrorf(err, "failed to create %s directory", category)
		}
	}
	return nil
}

// WriteDocument writes the document bytes verbatim at the root, replacing any previous copy.
func (s *Store) WriteDocument(ctx context.Context, doc *models.Document) (string, error) {
	path := s.layout.DocumentPath()
	opts := filemanager.DefaultFileWriteOptions()
	opts.Context = ctx
	opts.Permissions = s.filePerm

	if err := s.fileManager.WriteFile(path, doc.Body, opts); err != nil {
		return "", errorwrapper.WrapError(err, "failed to write document")
	}
	s.logger.Info().Str("path", path).Int("bytes", len(doc.Body)).Msg("Saved document")
	return path, nil
}

// SaveAsset writes body under the asset's category directory. The name comes
// from the URL path; an existing file is never overwritten, the collision
// policy picks stem_N.ext instead.
func (s *Store) SaveAsset(ctx context.Context, asset models.ResolvedAsset, body []byte) (models.StoredAsset, error) {
	category := asset.Category()
	dir := s.layout.CategoryPath(category)
	candidate := urlhandler.CandidateFilename(asset.URL, s.fallbackName)

	opts := filemanager.DefaultFileWriteOptions()
	opts.Context = ctx
	opts.Permissions = s.filePerm
	opts.CreateDirs = false
	opts.Exclusive = true

	name, err := s.registry.Reserve(dir, candidate, func(path string) error {
		return s.fileManager.WriteFile(path, body, opts)
	})
	if err != nil {
		return models.StoredAsset{}, err
	}

	return models.StoredAsset{
		Category:  category,
		Subdir:    s.layout.Subdir(category),
		Filename:  name,
		Path:      filepath.Join(dir, name),
		Size:      len(body),
		MIMEType:  mimetype.Detect(body).String(),
		SourceURL: asset.Location(),
		RawRef:    asset.Reference.Raw,
		Renamed:   name != candidate,
	}, nil
}
