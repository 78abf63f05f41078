package audit

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitecheck/sitecheck/internal/domain"
)

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// CheckHeadings expects a single h1 and no skipped levels going deeper.
func CheckHeadings(doc *domain.Document) []domain.Finding {
	var levels []int
	doc.DOM.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		levels = append(levels, headingLevels[goquery.NodeName(s)])
	})

	var findings []domain.Finding
	h1 := 0
	for _, l := range levels {
		if l == 1 {
			h1++
		}
	}
	switch {
	case h1 == 0:
		findings = append(findings, domain.NewFinding(domain.KindMissingH1, doc.RelPath, "No <h1> heading found"))
	case h1 > 1:
		findings = append(findings, domain.NewFinding(domain.KindMultipleH1, doc.RelPath,
			fmt.Sprintf("Multiple <h1> headings (%d found)", h1)))
	}

	for i := 1; i < len(levels); i++ {
		if levels[i] > levels[i-1]+1 {
			findings = append(findings, domain.NewFinding(domain.KindHeadingSkip, doc.RelPath,
				fmt.Sprintf("Skipped heading level (h%d to h%d)", levels[i-1], levels[i])))
		}
	}
	return findings
}
