package audit

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitecheck/sitecheck/internal/domain"
)

const linkSnippetLen = 100

var skippedPrefixes = []string{
	"http://", "https://", "//", "mailto:", "tel:", "javascript:", "data:", "#",
}

// Reference is one internal link or asset reference that must exist on disk.
type Reference struct {
	Attr     string // href or src
	Value    string // attribute value as authored
	Path     string // path part, query and fragment removed
	Fragment string
}

// ParseReference splits an attribute value into its path and fragment. It
// returns false for references that are never resolved on disk.
func ParseReference(attr, value string) (Reference, bool) {
	if value == "" {
		return Reference{}, false
	}
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(value, p) {
			return Reference{}, false
		}
	}

	p, fragment, _ := strings.Cut(value, "#")
	p, _, _ = strings.Cut(p, "?")
	if p == "" {
		return Reference{}, false
	}
	return Reference{Attr: attr, Value: value, Path: p, Fragment: fragment}, true
}

// Resolve returns the file a reference points at: root-relative for a
// leading slash, else relative to the document's directory.
func (r Reference) Resolve(root, docDir string) string {
	if strings.HasPrefix(r.Path, "/") {
		return filepath.Join(root, filepath.FromSlash(r.Path))
	}
	return filepath.Join(docDir, filepath.FromSlash(r.Path))
}

// LinkChecker verifies internal references and, optionally, their fragments.
type LinkChecker struct {
	Root         string
	CheckAnchors bool
	Anchors      *AnchorIndex
}

// Check returns one broken-link error per unresolvable reference and one
// missing-anchor warning per fragment without a target.
func (c *LinkChecker) Check(doc *domain.Document) []domain.Finding {
	var findings []domain.Finding
	docDir := filepath.Dir(doc.AbsPath)

	doc.DOM.Find("a[href], link[href], script[src], img[src]").Each(func(_ int, s *goquery.Selection) {
		attr := "src"
		if _, ok := s.Attr("href"); ok {
			attr = "href"
		}
		value, _ := s.Attr(attr)

		ref, ok := ParseReference(attr, value)
		if !ok {
			return
		}

		target, exists := locate(ref.Resolve(c.Root, docDir))
		if !exists {
			findings = append(findings,
				domain.NewFinding(domain.KindBrokenLink, doc.RelPath, fmt.Sprintf("Broken %s: %s", attr, value)).
					WithElement(domain.Snippet(s, linkSnippetLen)))
			return
		}

		if ref.Fragment == "" || !c.CheckAnchors || c.Anchors == nil {
			return
		}
		found, parsed := c.Anchors.Has(target, ref.Fragment)
		if parsed && !found {
			findings = append(findings, domain.NewFinding(domain.KindMissingAnchor, doc.RelPath,
				fmt.Sprintf("Anchor not found: %s (target element #%s missing)", value, ref.Fragment)))
		}
	})

	return findings
}

// locate checks p on disk, retrying with percent-escapes decoded.
func locate(p string) (string, bool) {
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	if decoded, err := url.PathUnescape(p); err == nil && decoded != p {
		if _, err := os.Stat(decoded); err == nil {
			return decoded, true
		}
	}
	return p, false
}
