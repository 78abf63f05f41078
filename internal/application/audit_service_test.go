package application_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/config"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/history"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/loader"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/sitemap"
	"github.com/sitecheck/sitecheck/internal/application"
	"github.com/sitecheck/sitecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cleanSite  = "../../testdata/site"
	brokenSite = "../../testdata/broken-site"
)

func newService() *application.AuditService {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return application.NewAuditService(
		loader.New(),
		sitemap.New(),
		config.New(),
		nil,
		history.New(),
		logrus.NewEntry(l),
	)
}

func countKind(findings []domain.Finding, k domain.Kind) int {
	n := 0
	for _, f := range findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestAuditService_CleanSitePasses(t *testing.T) {
	run, _, err := newService().Run(cleanSite, application.Overrides{})
	require.NoError(t, err)

	assert.True(t, run.Passed())
	assert.Empty(t, run.Findings)

	sum := run.Summary()
	assert.Equal(t, 4, sum.FilesScanned)
	assert.Equal(t, 3, sum.FilesWithSchema)
	assert.Equal(t, 5, sum.SchemaBlocks)
	assert.Equal(t, "404.html", run.Pages[0].Path)
}

func TestAuditService_BrokenSite(t *testing.T) {
	run, _, err := newService().Run(brokenSite, application.Overrides{})
	require.NoError(t, err)
	require.False(t, run.Passed())

	f := run.Findings
	assert.Equal(t, 2, countKind(f, domain.KindBrokenLink))
	assert.Equal(t, 1, countKind(f, domain.KindMissingAlt))
	assert.Equal(t, 1, countKind(f, domain.KindMissingMetaDesc))
	assert.Equal(t, 1, countKind(f, domain.KindCanonicalMismatch))
	assert.Equal(t, 1, countKind(f, domain.KindDuplicateID))
	assert.Equal(t, 1, countKind(f, domain.KindSchemaInvalidValue))
	assert.Equal(t, 1, countKind(f, domain.KindInvalidJSON))
	assert.Equal(t, 1, countKind(f, domain.KindSchemaRecommendation))
	assert.Equal(t, 1, countKind(f, domain.KindSitemapStale))

	sum := run.Summary()
	assert.Equal(t, 8, sum.Errors)
	assert.Equal(t, 2, sum.Warnings)
	assert.Equal(t, 3, sum.SchemaBlocks)

	require.Len(t, run.Pages, 1)
	assert.Equal(t, 8, run.Pages[0].Errors)
	assert.Equal(t, 1, run.Pages[0].Warnings)

	groups := run.ErrorsByKind()
	assert.Equal(t, domain.KindBrokenLink, groups[0].Kind)
}

func TestAuditService_OnlySchema(t *testing.T) {
	run, _, err := newService().Run(brokenSite, application.Overrides{Only: application.OnlySchema})
	require.NoError(t, err)

	for _, f := range run.Findings {
		assert.Contains(t, []domain.Kind{
			domain.KindInvalidJSON, domain.KindSchemaInvalidValue, domain.KindSchemaRecommendation,
		}, f.Kind)
	}
	assert.Equal(t, 2, run.Summary().Errors)
}

func TestAuditService_OnlyHTML(t *testing.T) {
	run, _, err := newService().Run(brokenSite, application.Overrides{Only: application.OnlyHTML})
	require.NoError(t, err)

	assert.Zero(t, countKind(run.Findings, domain.KindInvalidJSON))
	assert.Zero(t, run.Summary().SchemaBlocks)
	assert.Equal(t, 6, run.Summary().Errors)
}

func TestAuditService_UnknownOnly(t *testing.T) {
	_, _, err := newService().Run(cleanSite, application.Overrides{Only: "css"})
	assert.Error(t, err)
}

func TestAuditService_NoBuildOutput(t *testing.T) {
	run, _, err := newService().Run(t.TempDir(), application.Overrides{})
	require.NoError(t, err)
	assert.True(t, run.NoOutput)
	assert.True(t, run.Passed())
	assert.Empty(t, run.Findings)
}

func TestAuditService_MissingSitemapWarnsOnce(t *testing.T) {
	project := t.TempDir()
	page := `<html><head><title>%s</title><meta name="description" content="d">` +
		`<link rel="canonical" href="https://example.com/x"></head><body><h1>x</h1></body></html>`
	writeFile(t, project, "dist/a.html", fmt.Sprintf(page, "A"))
	writeFile(t, project, "dist/b.html", fmt.Sprintf(page, "B"))
	writeFile(t, project, "dist/c.html", fmt.Sprintf(page, "C"))

	run, _, err := newService().Run(project, application.Overrides{})
	require.NoError(t, err)

	require.Equal(t, 1, countKind(run.Findings, domain.KindSitemapMissing))
	assert.Equal(t, "sitemap.xml", run.Warnings()[0].File)
	assert.True(t, run.Passed())
	assert.Zero(t, countKind(run.Findings, domain.KindCanonicalMismatch))
}

func TestAuditService_CanonicalRoundTrip(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "sitemap.xml", `<urlset><url><loc>https://example.com/services/injury.html</loc></url></urlset>`)
	writeFile(t, project, "dist/services/injury.html",
		`<html><head><title>Injury</title><meta name="description" content="d">`+
			`<link rel="canonical" href="https://example.com/services/injury.html"></head><body><h1>Injury</h1></body></html>`)

	run, _, err := newService().Run(project, application.Overrides{})
	require.NoError(t, err)
	assert.Empty(t, run.Findings)
}

func TestAuditService_ExemptPagesSkipSEOChecks(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "sitemap.xml", `<urlset></urlset>`)
	writeFile(t, project, "dist/404.html", `<html><body><h1>Not found</h1><img src="/x.png"></body></html>`)

	run, _, err := newService().Run(project, application.Overrides{})
	require.NoError(t, err)

	assert.Zero(t, countKind(run.Findings, domain.KindMissingMetaDesc))
	assert.Zero(t, countKind(run.Findings, domain.KindMissingCanonical))
	assert.Zero(t, countKind(run.Findings, domain.KindSitemapOrphan))
	assert.Equal(t, 1, countKind(run.Findings, domain.KindMissingAlt))
}

func TestAuditService_SkipFromConfig(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, ".sitecheck.yaml", "skip: [links, alt]\n")
	writeFile(t, project, "sitemap.xml", `<urlset><url><loc>https://example.com/</loc></url></urlset>`)
	writeFile(t, project, "dist/index.html",
		`<html><head><title>Home</title><meta name="description" content="d">`+
			`<link rel="canonical" href="https://example.com/"></head><body><h1>Home</h1><img src="/gone.png"></body></html>`)

	run, _, err := newService().Run(project, application.Overrides{})
	require.NoError(t, err)
	assert.Empty(t, run.Findings)
}

func TestAuditService_OverridesOutputDir(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "public/index.html", `<html><body><h1>x</h1><img src="a.png"></body></html>`)

	run, cfg, err := newService().Run(project, application.Overrides{OutputDir: "public", Only: application.OnlyHTML})
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, "public", run.OutputDir)
	assert.False(t, run.NoOutput)
	assert.Equal(t, 1, run.Summary().FilesScanned)
}

func TestAuditService_Idempotent(t *testing.T) {
	svc := newService()
	first, _, err := svc.Run(brokenSite, application.Overrides{})
	require.NoError(t, err)
	second, _, err := svc.Run(brokenSite, application.Overrides{})
	require.NoError(t, err)

	opt := cmpopts.IgnoreFields(domain.ValidationRun{}, "StartedAt")
	if diff := cmp.Diff(first, second, opt); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
}

func TestAuditService_CheckPage(t *testing.T) {
	findings, err := newService().CheckPage(brokenSite, application.Overrides{}, "index.html")
	require.NoError(t, err)
	assert.Len(t, findings, 9)

	_, err = newService().CheckPage(brokenSite, application.Overrides{}, "nope.html")
	assert.ErrorIs(t, err, application.ErrPageNotFound)
}

func TestAuditService_RecordAndHistory(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "dist/index.html", `<html><body><img src="/missing.png" alt="x"></body></html>`)
	svc := newService()

	run, _, err := svc.Run(project, application.Overrides{})
	require.NoError(t, err)
	require.NoError(t, svc.Record(project, run))
	require.NoError(t, svc.Record(project, run))

	entries, err := svc.History(project)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Files)
	assert.False(t, entries[0].Passed)
	assert.Equal(t, run.Summary().Errors, entries[1].Errors)
}

// unparsableLoader reports one extra file that failed to load.
type unparsableLoader struct {
	domain.DocumentLoader
	failed string
}

func (l unparsableLoader) Load(root string) ([]*domain.Document, []domain.Finding, error) {
	docs, findings, err := l.DocumentLoader.Load(root)
	findings = append(findings, domain.NewFinding(domain.KindParseError, l.failed, "Could not load page: permission denied"))
	return docs, findings, err
}

func TestAuditService_UnparsableFilesCountAsScanned(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	svc := application.NewAuditService(
		unparsableLoader{DocumentLoader: loader.New(), failed: "blog/broken.html"},
		sitemap.New(),
		config.New(),
		nil,
		history.New(),
		logrus.NewEntry(l),
	)

	run, _, err := svc.Run(cleanSite, application.Overrides{})
	require.NoError(t, err)
	assert.True(t, run.Passed())
	assert.Equal(t, 5, run.Summary().FilesScanned)

	var paths []string
	for _, p := range run.Pages {
		paths = append(paths, p.Path)
	}
	assert.Equal(t, []string{"404.html", "about.html", "blog/broken.html", "blog/first-post.html", "index.html"}, paths)

	skipped := run.Pages[2]
	assert.True(t, skipped.Skipped)
	assert.Equal(t, 2, skipped.Warnings)
	assert.Equal(t, 1, countKind(run.Findings, domain.KindParseError))
	assert.Equal(t, 1, countKind(run.Findings, domain.KindSitemapOrphan))
}
