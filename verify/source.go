package verify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Source yields the trimmed text content of every element matching selector,
// in document order.
type Source interface {
	Texts(ctx context.Context, selector string) ([]string, error)
}

// HTMLSource reads texts from a static HTML document, such as a page saved by
// the suite or a test fixture.
type HTMLSource struct {
	doc *goquery.Document
}

// NewHTMLSource parses the whole document up front; the html parser is lenient,
// so only a failing reader returns an error.
func NewHTMLSource(r io.Reader) (*HTMLSource, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse html: %w", err)
	}
	return &HTMLSource{doc: doc}, nil
}

func HTMLSourceFromString(html string) (*HTMLSource, error) {
	return NewHTMLSource(strings.NewReader(html))
}

func (s *HTMLSource) Texts(_ context.Context, selector string) ([]string, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	var texts []string
	s.doc.FindMatcher(sel).Each(func(_ int, el *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(el.Text()))
	})
	return texts, nil
}
