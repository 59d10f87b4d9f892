package models

import (
	"net/url"
	"strings"
)

// AssetCategory groups assets by the kind of content they hold and decides
// which output subdirectory they land in.
type AssetCategory string

const (
	AssetCategoryStyle  AssetCategory = "style"
	AssetCategoryScript AssetCategory = "script"
	AssetCategoryImage  AssetCategory = "image"
	AssetCategoryOther  AssetCategory = "other"
)

// AllAssetCategories lists every category in output layout order
func AllAssetCategories() []AssetCategory {
	return []AssetCategory{
		AssetCategoryStyle,
		AssetCategoryScript,
		AssetCategoryImage,
		AssetCategoryOther,
	}
}

// ParseAssetCategory maps a string onto a category, falling back to the catch-all.
func ParseAssetCategory(s string) AssetCategory {
	switch AssetCategory(strings.ToLower(strings.TrimSpace(s))) {
	case AssetCategoryStyle:
		return AssetCategoryStyle
	case AssetCategoryScript:
		return AssetCategoryScript
	case AssetCategoryImage:
		return AssetCategoryImage
	default:
		return AssetCategoryOther
	}
}

func (c AssetCategory) String() string {
	return string(c)
}

// AssetReference is one pointer to a sub-resource as it appeared in markup.
type AssetReference struct {
	Raw        string        `json:"raw"`
	Category   AssetCategory `json:"category"`
	Origin     *url.URL      `json:"-"`
	SourceTag  string        `json:"source_tag,omitempty"`  // e.g. "link", "img"
	SourceAttr string        `json:"source_attr,omitempty"` // e.g. "href", "style"
}

// ResolvedAsset is a reference after resolution. URL always has an http or https scheme.
type ResolvedAsset struct {
	Reference AssetReference `json:"reference"`
	URL       *url.URL       `json:"-"`
}

// Location returns the absolute URL string
func (ra ResolvedAsset) Location() string {
	if ra.URL == nil {
		return ""
	}
	return ra.URL.String()
}

// Category is a shortcut for the originating reference's category
func (ra ResolvedAsset) Category() AssetCategory {
	return ra.Reference.Category
}

// StoredAsset records a successful retrieval and where it was written.
type StoredAsset struct {
	Category  AssetCategory `json:"category"`
	Subdir    string        `json:"subdir"`
	Filename  string        `json:"filename"`
	Path      string        `json:"path"`
	Size      int           `json:"size"`
	MIMEType  string        `json:"mime_type,omitempty"`
	SourceURL string        `json:"source_url"`
	RawRef    string        `json:"raw_ref"`
	Renamed   bool          `json:"renamed"` // true when the collision policy applied a suffix
}
