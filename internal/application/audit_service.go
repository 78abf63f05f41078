package application

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sitecheck/sitecheck/internal/domain"
	"github.com/sitecheck/sitecheck/internal/domain/audit"
	"github.com/sitecheck/sitecheck/internal/domain/schema"
)

// Check groups selectable with Overrides.Only.
const (
	OnlyHTML   = "html"
	OnlySchema = "schema"
)

// ErrPageNotFound is returned by CheckPage for paths that are not part of
// the build output.
var ErrPageNotFound = errors.New("page not found in build output")

// Overrides are per-invocation settings layered over .sitecheck.yaml.
type Overrides struct {
	OutputDir string
	Sitemap   string
	BaseURL   string
	Only      string
}

// Apply returns cfg with the non-empty overrides applied.
func (o Overrides) Apply(cfg domain.SiteConfig) (domain.SiteConfig, error) {
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	if o.Sitemap != "" {
		cfg.Sitemap = o.Sitemap
	}
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}

	switch o.Only {
	case "":
	case OnlyHTML:
		cfg.Skip = appendMissing(cfg.Skip, domain.CheckSchema)
	case OnlySchema:
		cfg.Skip = appendMissing(cfg.Skip, domain.HTMLChecks...)
	default:
		return cfg, fmt.Errorf("unknown check group %q (want %q or %q)", o.Only, OnlyHTML, OnlySchema)
	}
	return cfg, nil
}

func appendMissing(list []string, items ...string) []string {
	out := slices.Clone(list)
	for _, it := range items {
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}

// AuditService orchestrates one audit:
// load config → load documents → read sitemap → run checkers → aggregate.
type AuditService struct {
	loader       domain.DocumentLoader
	sitemaps     domain.SitemapReader
	configLoader domain.ConfigLoader
	revisions    domain.RevisionReader
	history      domain.RunHistory
	log          *logrus.Entry
}

func NewAuditService(
	loader domain.DocumentLoader,
	sitemaps domain.SitemapReader,
	configLoader domain.ConfigLoader,
	revisions domain.RevisionReader,
	history domain.RunHistory,
	log *logrus.Entry,
) *AuditService {
	return &AuditService{
		loader:       loader,
		sitemaps:     sitemaps,
		configLoader: configLoader,
		revisions:    revisions,
		history:      history,
		log:          log.WithField("component", "audit"),
	}
}

// Config loads the project configuration and applies overrides.
func (s *AuditService) Config(projectPath string, o Overrides) (domain.SiteConfig, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.SiteConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return o.Apply(cfg)
}

// Run loads the configuration and audits the project.
func (s *AuditService) Run(projectPath string, o Overrides) (*domain.ValidationRun, domain.SiteConfig, error) {
	cfg, err := s.Config(projectPath, o)
	if err != nil {
		return nil, domain.SiteConfig{}, err
	}
	run, err := s.Audit(projectPath, cfg)
	return run, cfg, err
}

// Audit runs every enabled check over the build output of projectPath.
// A missing output directory yields a run with NoOutput set and no findings.
func (s *AuditService) Audit(projectPath string, cfg domain.SiteConfig) (*domain.ValidationRun, error) {
	outputDir := resolve(projectPath, cfg.OutputDir)
	run := domain.NewValidationRun(cfg.OutputDir)

	if s.revisions != nil {
		if rev, err := s.revisions.Revision(projectPath); err == nil {
			run.Revision = rev
		} else {
			s.log.WithError(err).Debug("no revision")
		}
	}

	docs, loadFindings, err := s.loader.Load(outputDir)
	if errors.Is(err, domain.ErrNoBuildOutput) {
		s.log.WithField("dir", outputDir).Info("no build output, skipping")
		run.NoOutput = true
		return run, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	s.log.WithField("pages", len(docs)).Debug("documents loaded")

	htmlChecks := slices.ContainsFunc(domain.HTMLChecks, cfg.Enabled)

	var sitemap domain.SitemapIndex
	if htmlChecks {
		sitemap, err = s.sitemaps.Read(resolve(projectPath, cfg.Sitemap), cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("reading sitemap: %w", err)
		}
		sitemap.Path = cfg.Sitemap
		sitemap.CleanURLs = cfg.CleanURLs
		if !sitemap.Present {
			run.Add(domain.NewFinding(domain.KindSitemapMissing, cfg.Sitemap,
				"Sitemap not found, canonical URLs cannot be verified"))
		}
	}

	// Files that could not be parsed still count as scanned pages.
	var pages []string
	for _, f := range loadFindings {
		if f.Kind == domain.KindParseError {
			run.AddPage(domain.PageResult{Path: f.File, Skipped: true})
			pages = append(pages, f.File)
		}
	}
	run.Add(loadFindings...)

	links := &audit.LinkChecker{
		Root:         outputDir,
		CheckAnchors: cfg.Enabled(domain.CheckAnchors),
		Anchors:      audit.NewAnchorIndex(s.loader.ParseFile),
	}
	titles := audit.NewTitleTracker()
	schemaOpts := schema.Options{MinFAQQuestions: cfg.MinFAQQuestions}

	for _, doc := range docs {
		page := domain.PageResult{Path: doc.RelPath}
		exempt := cfg.IsExempt(doc.BaseName())

		var findings []domain.Finding
		if cfg.Enabled(domain.CheckLinks) {
			findings = append(findings, links.Check(doc)...)
		}
		if cfg.Enabled(domain.CheckAlt) {
			findings = append(findings, audit.CheckAltText(doc, cfg.DecorativeHints)...)
		}
		if cfg.Enabled(domain.CheckMeta) && !exempt {
			findings = append(findings, audit.CheckMetaDescription(doc, cfg.MetaDescriptionMax)...)
		}
		if cfg.Enabled(domain.CheckCanonical) && !exempt {
			findings = append(findings, audit.CheckCanonical(doc, sitemap)...)
		}
		if cfg.Enabled(domain.CheckIDs) {
			findings = append(findings, audit.CheckDuplicateIDs(doc)...)
		}
		if cfg.Enabled(domain.CheckHeadings) {
			findings = append(findings, audit.CheckHeadings(doc)...)
		}
		if cfg.Enabled(domain.CheckTitles) && !exempt {
			findings = append(findings, titles.Check(doc)...)
		}
		if cfg.Enabled(domain.CheckSchema) {
			blocks, schemaFindings := schema.ValidatePage(doc.RelPath, doc.Raw, schemaOpts)
			page.Blocks = blocks
			findings = append(findings, schemaFindings...)
		}

		run.AddPage(page)
		run.Add(findings...)
		pages = append(pages, doc.RelPath)

		s.log.WithFields(logrus.Fields{"page": doc.RelPath, "findings": len(findings)}).Debug("page checked")
	}

	slices.SortStableFunc(run.Pages, func(a, b domain.PageResult) int {
		return strings.Compare(a.Path, b.Path)
	})
	slices.Sort(pages)

	if cfg.Enabled(domain.CheckSitemapCoverage) && htmlChecks {
		run.Add(audit.CheckSitemapCoverage(sitemap, pages, func(p string) bool {
			return cfg.IsExempt(path.Base(p))
		})...)
	}

	sum := run.Summary()
	s.log.WithFields(logrus.Fields{
		"files":    sum.FilesScanned,
		"errors":   sum.Errors,
		"warnings": sum.Warnings,
	}).Info("audit finished")
	return run, nil
}

// CheckPage audits the project and returns the findings for one page.
func (s *AuditService) CheckPage(projectPath string, o Overrides, relPath string) ([]domain.Finding, error) {
	run, _, err := s.Run(projectPath, o)
	if err != nil {
		return nil, err
	}
	relPath = filepath.ToSlash(filepath.Clean(relPath))
	for _, p := range run.Pages {
		if p.Path == relPath {
			return run.FindingsFor(relPath), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", relPath, ErrPageNotFound)
}

// Record appends a summary of run to the project's history.
func (s *AuditService) Record(projectPath string, run *domain.ValidationRun) error {
	if s.history == nil {
		return nil
	}
	sum := run.Summary()
	entry := domain.RunEntry{
		Timestamp: run.StartedAt.UTC().Format(time.RFC3339),
		Files:     sum.FilesScanned,
		Errors:    sum.Errors,
		Warnings:  sum.Warnings,
		Passed:    run.Passed(),
	}
	if run.Revision != nil {
		entry.Commit = run.Revision.Hash
	}
	if err := s.history.Save(projectPath, entry); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// History returns the recorded runs, oldest first.
func (s *AuditService) History(projectPath string) ([]domain.RunEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Load(projectPath)
}

func resolve(projectPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}
