package audit

import (
	"fmt"
	"strings"

	"github.com/sitecheck/sitecheck/internal/domain"
)

// TitleTracker checks page titles and remembers them across the run to
// report duplicates.
type TitleTracker struct {
	seen map[string]string
}

// NewTitleTracker creates an empty tracker.
func NewTitleTracker() *TitleTracker {
	return &TitleTracker{seen: make(map[string]string)}
}

// Check requires a non-blank title that no earlier page used.
func (t *TitleTracker) Check(doc *domain.Document) []domain.Finding {
	title := strings.TrimSpace(doc.DOM.Find("head > title").First().Text())
	if title == "" {
		return []domain.Finding{domain.NewFinding(domain.KindMissingTitle, doc.RelPath, "Missing <title>")}
	}
	if first, ok := t.seen[title]; ok {
		return []domain.Finding{domain.NewFinding(domain.KindDuplicateTitle, doc.RelPath,
			fmt.Sprintf("Duplicate title %q (first used on %s)", title, first))}
	}
	t.seen[title] = doc.RelPath
	return nil
}

// CheckSitemapCoverage compares the discovered pages against the sitemap:
// listed pages must exist, and pages that are not exempt must be listed.
func CheckSitemapCoverage(sitemap domain.SitemapIndex, pages []string, isExempt func(string) bool) []domain.Finding {
	if !sitemap.Present {
		return nil
	}

	var findings []domain.Finding
	matched := make(map[string]bool)
	for _, p := range pages {
		hit := false
		for _, key := range sitemap.KeysFor(p) {
			if _, ok := sitemap.Entries[key]; ok {
				matched[key] = true
				hit = true
			}
		}
		if !hit && !isExempt(p) {
			findings = append(findings, domain.NewFinding(domain.KindSitemapOrphan, p, "Page is not listed in the sitemap"))
		}
	}

	for _, key := range sitemap.Keys {
		if !matched[key] {
			findings = append(findings, domain.NewFinding(domain.KindSitemapStale, sitemap.Path,
				"Sitemap entry has no generated page: "+sitemap.Entries[key]))
		}
	}
	return findings
}
