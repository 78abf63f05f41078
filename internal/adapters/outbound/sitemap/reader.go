package sitemap

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/sitecheck/sitecheck/internal/domain"
)

var locPattern = regexp.MustCompile(`(?s)<loc>(.*?)</loc>`)

// Reader implements domain.SitemapReader for sitemap.xml files.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Read indexes every <loc> of the sitemap at path. A missing file yields an
// index with Present=false.
func (r *Reader) Read(path, baseURL string) (domain.SitemapIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.SitemapIndex{Path: path}, nil
		}
		return domain.SitemapIndex{}, fmt.Errorf("reading sitemap: %w", err)
	}

	idx := domain.NewSitemapIndex(path)
	for _, m := range locPattern.FindAllStringSubmatch(string(data), -1) {
		loc := strings.TrimSpace(m[1])
		if loc == "" {
			continue
		}
		idx.Add(Key(loc, baseURL), loc)
	}
	return idx, nil
}

// Key maps a sitemap URL to a path relative to the output root.
func Key(loc, baseURL string) string {
	p := loc
	if base := strings.TrimSuffix(baseURL, "/"); base != "" && strings.HasPrefix(loc, base) {
		p = strings.TrimPrefix(loc, base)
	} else if u, err := url.Parse(loc); err == nil && u.Host != "" {
		p = u.Path
	}
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "index.html"
	}
	return p
}
