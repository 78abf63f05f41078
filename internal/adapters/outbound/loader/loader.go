package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitecheck/sitecheck/internal/domain"
)

// HTMLLoader implements domain.DocumentLoader by walking the build output.
type HTMLLoader struct{}

func New() *HTMLLoader {
	return &HTMLLoader{}
}

func (l *HTMLLoader) Load(root string) ([]*domain.Document, []domain.Finding, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, domain.ErrNoBuildOutput
		}
		return nil, nil, fmt.Errorf("reading output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("output path %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".html") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking output directory: %w", err)
	}

	rels := make(map[string]string, len(paths))
	for _, p := range paths {
		rel, _ := filepath.Rel(absRoot, p)
		rels[p] = filepath.ToSlash(rel)
	}
	// WalkDir orders per directory; sort the relative paths for a stable
	// order across the whole tree.
	sort.Slice(paths, func(i, j int) bool { return rels[paths[i]] < rels[paths[j]] })

	var (
		docs     []*domain.Document
		findings []domain.Finding
	)
	for _, p := range paths {
		doc, err := l.ParseFile(p)
		if err != nil {
			findings = append(findings, domain.NewFinding(domain.KindParseError, rels[p],
				fmt.Sprintf("Could not load page: %v", err)))
			continue
		}
		doc.RelPath = rels[p]
		docs = append(docs, doc)
	}
	return docs, findings, nil
}

func (l *HTMLLoader) ParseFile(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := string(data)
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &domain.Document{
		RelPath: filepath.ToSlash(filepath.Base(path)),
		AbsPath: path,
		Raw:     raw,
		DOM:     dom,
	}, nil
}
