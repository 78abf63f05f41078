package domain

import (
	"fmt"
	"slices"
)

// Check names usable in the skip list of .sitecheck.yaml.
const (
	CheckLinks           = "links"
	CheckAnchors         = "anchors"
	CheckAlt             = "alt"
	CheckMeta            = "meta"
	CheckCanonical       = "canonical"
	CheckIDs             = "ids"
	CheckSchema          = "schema"
	CheckHeadings        = "headings"
	CheckTitles          = "titles"
	CheckSitemapCoverage = "sitemap_coverage"
)

// ValidChecks enumerates all check names.
var ValidChecks = []string{
	CheckLinks, CheckAnchors, CheckAlt, CheckMeta, CheckCanonical,
	CheckIDs, CheckSchema, CheckHeadings, CheckTitles, CheckSitemapCoverage,
}

// HTMLChecks are the checks run by "--only html".
var HTMLChecks = []string{
	CheckLinks, CheckAnchors, CheckAlt, CheckMeta, CheckCanonical,
	CheckIDs, CheckHeadings, CheckTitles, CheckSitemapCoverage,
}

// SiteConfig holds project-level configuration loaded from .sitecheck.yaml.
type SiteConfig struct {
	OutputDir          string   `yaml:"output_dir"           json:"output_dir"`
	Sitemap            string   `yaml:"sitemap"              json:"sitemap"`
	BaseURL            string   `yaml:"base_url"             json:"base_url,omitempty"`
	CleanURLs          bool     `yaml:"clean_urls"           json:"clean_urls,omitempty"`
	ExemptPages        []string `yaml:"exempt_pages"         json:"exempt_pages"`
	DecorativeHints    []string `yaml:"decorative_hints"     json:"decorative_hints"`
	MetaDescriptionMax int      `yaml:"meta_description_max" json:"meta_description_max"`
	MinFAQQuestions    int      `yaml:"min_faq_questions"    json:"min_faq_questions"`
	WarningPreview     int      `yaml:"warning_preview"      json:"warning_preview"`
	Skip               []string `yaml:"skip"                 json:"skip,omitempty"`
}

// DefaultConfig mirrors the conventions of the site build: output in dist/,
// sitemap.xml at the project root.
func DefaultConfig() SiteConfig {
	return SiteConfig{
		OutputDir:          "dist",
		Sitemap:            "sitemap.xml",
		ExemptPages:        []string{"404.html", "500.html"},
		DecorativeHints:    []string{"logo", "icon"},
		MetaDescriptionMax: 160,
		MinFAQQuestions:    5,
		WarningPreview:     10,
	}
}

// Enabled reports whether a check is not skipped.
func (c SiteConfig) Enabled(check string) bool {
	return !slices.Contains(c.Skip, check)
}

// IsExempt reports whether a page is excluded from SEO-oriented checks.
func (c SiteConfig) IsExempt(baseName string) bool {
	return slices.Contains(c.ExemptPages, baseName)
}

// Validate checks for unknown check names and out-of-range limits.
func (c SiteConfig) Validate() error {
	for _, name := range c.Skip {
		if !slices.Contains(ValidChecks, name) {
			return fmt.Errorf("unknown check %q in skip", name)
		}
	}
	if c.MetaDescriptionMax <= 0 {
		return fmt.Errorf("meta_description_max must be positive, got %d", c.MetaDescriptionMax)
	}
	if c.MinFAQQuestions < 0 {
		return fmt.Errorf("min_faq_questions must not be negative, got %d", c.MinFAQQuestions)
	}
	if c.WarningPreview < 0 {
		return fmt.Errorf("warning_preview must not be negative, got %d", c.WarningPreview)
	}
	return nil
}
