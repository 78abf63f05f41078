package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/sitecheck/sitecheck/internal/adapters/outbound/config"
	"github.com/sitecheck/sitecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sitecheck.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
output_dir: public
base_url: https://example.com
clean_urls: true
exempt_pages: [404.html, thanks.html]
meta_description_max: 155
skip: [headings, titles]
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, "https://example.com", cfg.BaseURL)
	assert.True(t, cfg.CleanURLs)
	assert.Equal(t, []string{"404.html", "thanks.html"}, cfg.ExemptPages)
	assert.Equal(t, 155, cfg.MetaDescriptionMax)
	assert.False(t, cfg.Enabled(domain.CheckHeadings))
	assert.True(t, cfg.Enabled(domain.CheckLinks))
}

func TestYAMLLoader_OmittedKeysKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `output_dir: build`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	defaults := domain.DefaultConfig()
	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, defaults.Sitemap, cfg.Sitemap)
	assert.Equal(t, defaults.DecorativeHints, cfg.DecorativeHints)
	assert.Equal(t, defaults.MetaDescriptionMax, cfg.MetaDescriptionMax)
	assert.Equal(t, defaults.MinFAQQuestions, cfg.MinFAQQuestions)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .sitecheck.yaml")
}

func TestYAMLLoader_UnknownCheckRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `skip: [linkz]`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .sitecheck.yaml")
	assert.Contains(t, err.Error(), `"linkz"`)
}

func TestYAMLLoader_NonPositiveLimitRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `meta_description_max: 0`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
}
