package extractor

import (
	"io"
	"iter"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
)

// Node is the element view the extraction rules need: a lower-case tag
// name and attribute lookup.
type Node interface {
	Name() string
	Attr(name string) (string, bool)
}

// Parser turns markup into the sequence of its elements in document order.
// Implementations must tolerate malformed input and recover what structure they can.
type Parser interface {
	Parse(r io.Reader) (iter.Seq[Node], error)
}

// GoqueryParser parses with goquery over the HTML5 tree builder in
// golang.org/x/net/html, which never rejects malformed markup.
type GoqueryParser struct{}

// NewGoqueryParser creates the default parser
func NewGoqueryParser() *GoqueryParser {
	return &GoqueryParser{}
}

// Parse reads all of r. The only possible error is a read failure.
func (p *GoqueryParser) Parse(r io.Reader) (iter.Seq[Node], error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse HTML content")
	}

	return func(yield func(Node) bool) {
		doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			return yield(selectionNode{s})
		})
	}, nil
}

type selectionNode struct {
	sel *goquery.Selection
}

func (n selectionNode) Name() string {
	return goquery.NodeName(n.sel)
}

func (n selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
