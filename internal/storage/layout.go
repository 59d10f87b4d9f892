package storage

import (
	"path/filepath"

	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/aleister1102/pagemirror/internal/models"
)

// Layout maps the output root and category subdirectories
type Layout struct {
	Root         string
	DocumentName string
	dirs         map[models.AssetCategory]string
}

// NewLayout builds the layout for root from the configured directory names
func NewLayout(root, documentName string, cfg config.LayoutConfig) Layout {
	return Layout{
		Root:         root,
		DocumentName: documentName,
		dirs: map[models.AssetCategory]string{
			models.AssetCategoryStyle:  cfg.StyleDir,
			models.AssetCategoryScript: cfg.ScriptDir,
			models.AssetCategoryImage:  cfg.ImageDir,
			models.AssetCategoryOther:  cfg.OtherDir,
		},
	}
}

// Subdir returns the directory name for category; unknown categories use the catch-all.
func (l Layout) Subdir(category models.AssetCategory) string {
	if dir, ok := l.dirs[category]; ok {
		return dir
	}
	return l.dirs[models.AssetCategoryOther]
}

// CategoryPath returns the absolute-or-relative directory path for category
func (l Layout) CategoryPath(category models.AssetCategory) string {
	return filepath.Join(l.Root, l.Subdir(category))
}

// DocumentPath returns where the root document is written
func (l Layout) DocumentPath() string {
	return filepath.Join(l.Root, l.DocumentName)
}
