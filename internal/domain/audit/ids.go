package audit

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitecheck/sitecheck/internal/domain"
)

const idSnippetLen = 80

// CheckDuplicateIDs reports every element reusing an id already seen earlier
// in the same document.
func CheckDuplicateIDs(doc *domain.Document) []domain.Finding {
	var findings []domain.Finding
	first := make(map[string]string)

	doc.DOM.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if id == "" {
			return
		}
		snippet := domain.Snippet(s, idSnippetLen)
		prev, seen := first[id]
		if !seen {
			first[id] = snippet
			return
		}
		f := domain.NewFinding(domain.KindDuplicateID, doc.RelPath, fmt.Sprintf("Duplicate ID found: %q", id)).
			WithElement(snippet)
		f.Related = prev
		findings = append(findings, f)
	})
	return findings
}
