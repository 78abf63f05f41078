package audit

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitecheck/sitecheck/internal/domain"
)

// ParseFunc parses a single HTML file.
type ParseFunc func(path string) (*domain.Document, error)

// AnchorIndex caches the fragment targets (id and legacy name attributes) of
// files referenced with a fragment. It lives for one run.
type AnchorIndex struct {
	parse   ParseFunc
	targets map[string]map[string]bool
}

// NewAnchorIndex creates an index that parses targets with parse.
func NewAnchorIndex(parse ParseFunc) *AnchorIndex {
	return &AnchorIndex{parse: parse, targets: make(map[string]map[string]bool)}
}

// Has reports whether target defines fragment. parsed is false when the
// target could not be read or parsed; callers skip the check in that case.
func (a *AnchorIndex) Has(target, fragment string) (found, parsed bool) {
	names, ok := a.targets[target]
	if !ok {
		names = a.collect(target)
		a.targets[target] = names
	}
	if names == nil {
		return false, false
	}
	if names[fragment] {
		return true, true
	}
	if decoded, err := url.PathUnescape(fragment); err == nil && names[decoded] {
		return true, true
	}
	return false, true
}

func (a *AnchorIndex) collect(target string) map[string]bool {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, "index.html")
	}
	doc, err := a.parse(target)
	if err != nil || doc == nil || doc.DOM == nil {
		return nil
	}

	names := make(map[string]bool)
	doc.DOM.Find("[id], [name]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok && id != "" {
			names[id] = true
		}
		if name, ok := s.Attr("name"); ok && name != "" {
			names[name] = true
		}
	})
	return names
}
