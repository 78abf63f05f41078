package domain

import (
	"path"
	"strings"
)

// SitemapIndex maps page paths relative to the output root to the canonical
// URL recorded for them in the sitemap.
type SitemapIndex struct {
	Path      string            `json:"path"`
	Present   bool              `json:"present"`
	CleanURLs bool              `json:"clean_urls,omitempty"`
	Locations []string          `json:"locations"`
	Keys      []string          `json:"keys"`
	Entries   map[string]string `json:"entries"`
}

// NewSitemapIndex returns an empty, present index for the artifact at p.
func NewSitemapIndex(p string) SitemapIndex {
	return SitemapIndex{Path: p, Present: true, Entries: make(map[string]string)}
}

// Add records loc under key, keeping the first URL seen for a key.
func (s *SitemapIndex) Add(key, loc string) {
	if s.Entries == nil {
		s.Entries = make(map[string]string)
	}
	s.Locations = append(s.Locations, loc)
	if _, ok := s.Entries[key]; !ok {
		s.Entries[key] = loc
		s.Keys = append(s.Keys, key)
	}
}

// Lookup returns the recorded URL for a page path.
func (s SitemapIndex) Lookup(relPath string) (string, bool) {
	for _, key := range s.KeysFor(relPath) {
		if u, ok := s.Entries[key]; ok {
			return u, true
		}
	}
	return "", false
}

// Covers reports whether some sitemap key resolves to relPath.
func (s SitemapIndex) Covers(relPath string) bool {
	_, ok := s.Lookup(relPath)
	return ok
}

// KeysFor returns the index keys that may refer to relPath, most specific
// first.
func (s SitemapIndex) KeysFor(relPath string) []string {
	keys := []string{relPath}
	if !s.CleanURLs {
		return keys
	}
	if strings.HasSuffix(relPath, ".html") {
		keys = append(keys, strings.TrimSuffix(relPath, ".html"))
	}
	if path.Base(relPath) == "index.html" {
		if dir := path.Dir(relPath); dir != "." {
			keys = append(keys, dir+"/", dir)
		}
	}
	return keys
}
