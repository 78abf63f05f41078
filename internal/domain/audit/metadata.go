package audit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitecheck/sitecheck/internal/domain"
)

// CheckAltText requires an alt attribute on every image with a source. An
// empty alt is only expected on decorative images, recognised by hints in
// the source path.
func CheckAltText(doc *domain.Document, decorativeHints []string) []domain.Finding {
	var findings []domain.Finding
	doc.DOM.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		if src == "" {
			return
		}

		alt, ok := img.Attr("alt")
		switch {
		case !ok:
			findings = append(findings,
				domain.NewFinding(domain.KindMissingAlt, doc.RelPath, "Image missing alt attribute: "+src).
					WithElement(domain.Snippet(img, linkSnippetLen)))
		case strings.TrimSpace(alt) == "" && !domain.HasAny(src, decorativeHints):
			findings = append(findings, domain.NewFinding(domain.KindEmptyAlt, doc.RelPath,
				"Image has empty alt text (OK if decorative): "+src))
		}
	})
	return findings
}

// CheckMetaDescription requires exactly one non-empty description of at most
// maxLen characters.
func CheckMetaDescription(doc *domain.Document, maxLen int) []domain.Finding {
	metas := doc.DOM.Find(`meta[name="description"]`)
	if metas.Length() == 0 {
		return []domain.Finding{domain.NewFinding(domain.KindMissingMetaDesc, doc.RelPath, "Missing meta description")}
	}

	var findings []domain.Finding
	content, _ := metas.First().Attr("content")
	switch n := utf8.RuneCountInString(content); {
	case strings.TrimSpace(content) == "":
		findings = append(findings, domain.NewFinding(domain.KindEmptyMetaDesc, doc.RelPath, "Meta description is empty"))
	case n > maxLen:
		findings = append(findings, domain.NewFinding(domain.KindLongMetaDesc, doc.RelPath,
			fmt.Sprintf("Meta description too long (%d chars, limit %d)", n, maxLen)))
	}

	if metas.Length() > 1 {
		findings = append(findings, domain.NewFinding(domain.KindMultipleMetaDesc, doc.RelPath,
			fmt.Sprintf("Found %d meta descriptions, only the first is used", metas.Length())))
	}
	return findings
}

// CheckCanonical recommends a canonical link and, when the sitemap records
// the page, requires the canonical href to match it exactly.
func CheckCanonical(doc *domain.Document, sitemap domain.SitemapIndex) []domain.Finding {
	canonical := doc.DOM.Find(`link[rel="canonical"]`).First()
	if canonical.Length() == 0 {
		return []domain.Finding{domain.NewFinding(domain.KindMissingCanonical, doc.RelPath,
			"Missing canonical URL (recommended for SEO)")}
	}

	href, _ := canonical.Attr("href")
	expected, ok := sitemap.Lookup(doc.RelPath)
	if !ok || href == expected {
		return nil
	}
	return []domain.Finding{domain.NewFinding(domain.KindCanonicalMismatch, doc.RelPath,
		fmt.Sprintf("Canonical URL mismatch: found %s, expected (from sitemap) %s", href, expected))}
}
