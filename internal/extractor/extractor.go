// Package extractor finds the asset references in a fetched document.
package extractor

import (
	"bytes"
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/aleister1102/pagemirror/internal/models"
	"github.com/rs/zerolog"
)

// cssURLRegex matches url(...) with double-quoted, single-quoted or bare contents.
var cssURLRegex = regexp.MustCompile(`(?i)\burl\(\s*(?:"([^"]*)"|'([^']*)'|([^)'"]*?))\s*\)`)

// ReferenceExtractor applies the asset rules to a document:
//   - <link> with a "stylesheet" rel token: href, category style
//   - <script src>: category script (inline scripts have nothing to fetch)
//   - <img src>: category image
//   - any style attribute: every url(...) inside it, category image
type ReferenceExtractor struct {
	parser Parser
	logger zerolog.Logger
}

// NewReferenceExtractor creates an extractor; a nil parser means goquery.
func NewReferenceExtractor(parser Parser, logger zerolog.Logger) *ReferenceExtractor {
	if parser == nil {
		parser = NewGoqueryParser()
	}
	return &ReferenceExtractor{
		parser: parser,
		logger: logger.With().Str("component", "ReferenceExtractor").Logger(),
	}
}

// References yields the document's asset references in markup order.
// Parsing happens when the sequence is first ranged over. Duplicates are kept.
func (re *ReferenceExtractor) References(doc *models.Document) iter.Seq[models.AssetReference] {
	return func(yield func(models.AssetReference) bool) {
		content := doc.Body
		if doc.Text != "" {
			content = []byte(doc.Text)
		}

		nodes, err := re.parser.Parse(bytes.NewReader(content))
		if err != nil {
			re.logger.Warn().Err(err).Str("url", doc.Location()).Msg("Markup could not be parsed, no references extracted")
			return
		}

		count := 0
		defer func() {
			re.logger.Debug().Str("url", doc.Location()).Int("references", count).Msg("Reference extraction finished")
		}()

		for node := range nodes {
			for ref := range nodeReferences(node) {
				ref.Origin = doc.URL
				count++
				if !yield(ref) {
					return
				}
			}
		}
	}
}

// Extract collects References into a slice
func (re *ReferenceExtractor) Extract(doc *models.Document) []models.AssetReference {
	return slices.Collect(re.References(doc))
}

// nodeReferences yields the element rule's reference first, then the style urls.
func nodeReferences(node Node) iter.Seq[models.AssetReference] {
	return func(yield func(models.AssetReference) bool) {
		if ref, ok := elementReference(node); ok {
			if !yield(ref) {
				return
			}
		}

		style, ok := node.Attr("style")
		if !ok {
			return
		}
		for _, raw := range StyleURLs(style) {
			ref := models.AssetReference{
				Raw:        raw,
				Category:   models.AssetCategoryImage,
				SourceTag:  node.Name(),
				SourceAttr: "style",
			}
			if !yield(ref) {
				return
			}
		}
	}
}

func elementReference(node Node) (models.AssetReference, bool) {
	var attr string
	var category models.AssetCategory

	switch node.Name() {
	case "link":
		if !hasRelToken(node, "stylesheet") {
			return models.AssetReference{}, false
		}
		attr, category = "href", models.AssetCategoryStyle
	case "script":
		attr, category = "src", models.AssetCategoryScript
	case "img":
		attr, category = "src", models.AssetCategoryImage
	default:
		return models.AssetReference{}, false
	}

	value, ok := node.Attr(attr)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return models.AssetReference{}, false
	}
	return models.AssetReference{
		Raw:        value,
		Category:   category,
		SourceTag:  node.Name(),
		SourceAttr: attr,
	}, true
}

// hasRelToken reports whether the space-separated rel list contains token, ignoring case
func hasRelToken(node Node, token string) bool {
	rel, ok := node.Attr("rel")
	if !ok {
		return false
	}
	for _, t := range strings.Fields(rel) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

// StyleURLs returns every non-empty url(...) reference in a CSS declaration list, in order.
func StyleURLs(style string) []string {
	matches := cssURLRegex.FindAllStringSubmatch(style, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		raw := m[1] + m[2] + m[3] // only one group participates
		if raw = strings.TrimSpace(raw); raw != "" {
			urls = append(urls, raw)
		}
	}
	return urls
}
