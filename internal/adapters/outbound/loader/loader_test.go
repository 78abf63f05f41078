package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sitecheck/sitecheck/internal/adapters/outbound/loader"
	"github.com/sitecheck/sitecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func relPaths(docs []*domain.Document) []string {
	var out []string
	for _, d := range docs {
		out = append(out, d.RelPath)
	}
	return out
}

func TestHTMLLoader_LoadsHTMLInLexicalOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "<html><body><h1>Home</h1></body></html>")
	writeFile(t, root, "about.html", "<html></html>")
	writeFile(t, root, "blog/post-1.html", "<html></html>")
	writeFile(t, root, "blog-archive.html", "<html></html>")
	writeFile(t, root, "css/site.css", "body{}")
	writeFile(t, root, "robots.txt", "User-agent: *")

	docs, findings, err := loader.New().Load(root)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"about.html", "blog-archive.html", "blog/post-1.html", "index.html"}, relPaths(docs))

	home := docs[3]
	assert.Equal(t, filepath.Join(root, "index.html"), home.AbsPath)
	assert.Contains(t, home.Raw, "<h1>Home</h1>")
	assert.Equal(t, "Home", home.DOM.Find("h1").Text())
}

func TestHTMLLoader_MissingRootIsNoBuildOutput(t *testing.T) {
	_, _, err := loader.New().Load(filepath.Join(t.TempDir(), "dist"))
	assert.ErrorIs(t, err, domain.ErrNoBuildOutput)
}

func TestHTMLLoader_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dist", "not a dir")

	_, _, err := loader.New().Load(filepath.Join(root, "dist"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoBuildOutput)
}

func TestHTMLLoader_UnreadableFileBecomesParseError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	root := t.TempDir()
	writeFile(t, root, "ok.html", "<html></html>")
	writeFile(t, root, "locked.html", "<html></html>")
	require.NoError(t, os.Chmod(filepath.Join(root, "locked.html"), 0000))

	docs, findings, err := loader.New().Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.html"}, relPaths(docs))
	require.Len(t, findings, 1)
	assert.Equal(t, domain.KindParseError, findings[0].Kind)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	assert.Equal(t, "locked.html", findings[0].File)
}

func TestHTMLLoader_ParseFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "faq.html", `<section id="fees"></section>`)

	doc, err := loader.New().ParseFile(filepath.Join(root, "faq.html"))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.DOM.Find("#fees").Length())

	_, err = loader.New().ParseFile(filepath.Join(root, "missing.html"))
	assert.Error(t, err)
}
