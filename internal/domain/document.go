package domain

import (
	"errors"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoBuildOutput is returned when the output directory does not exist yet.
// Callers treat it as a successful no-op.
var ErrNoBuildOutput = errors.New("no build output")

// Document is one generated HTML file. It is read-only once loaded.
type Document struct {
	RelPath string // slash-separated, relative to the output root
	AbsPath string
	Raw     string
	DOM     *goquery.Document
}

// Dir returns the slash-separated directory of the document within the
// output root ("." for top-level pages).
func (d *Document) Dir() string { return path.Dir(d.RelPath) }

// BaseName returns the file name of the document.
func (d *Document) BaseName() string { return path.Base(d.RelPath) }

// Snippet renders a selection back to HTML, truncated to n runes.
func Snippet(s *goquery.Selection, n int) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return Truncate(html, n)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// HasAny reports whether s contains any of the substrings.
func HasAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
