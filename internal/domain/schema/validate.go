package schema

import (
	"strings"

	"github.com/sitecheck/sitecheck/internal/domain"
)

// Options tunes the rule sets.
type Options struct {
	MinFAQQuestions int
}

// DefaultOptions matches Google's rich-result guidance.
func DefaultOptions() Options {
	return Options{MinFAQQuestions: 5}
}

type checker struct {
	file     string
	line     int
	raw      string
	typeName string
	opts     Options
	findings []domain.Finding
}

func (c *checker) add(kind domain.Kind, msg string) {
	f := domain.NewFinding(kind, c.file, msg)
	f.Line = c.line
	f.SchemaType = c.typeName
	c.findings = append(c.findings, f)
}

// ValidateBlock decodes a block and runs the rule set of every record in it.
// A block that is not valid JSON yields a single invalid-json finding.
func ValidateBlock(file string, b Block, opts Options) (domain.BlockResult, []domain.Finding) {
	result := domain.BlockResult{Line: b.Line}

	nodes, err := Decode(b)
	if err != nil {
		f := domain.NewFinding(domain.KindInvalidJSON, file, "Invalid JSON: "+err.Error())
		f.Line = b.Line
		result.Type = "invalid JSON"
		result.Errors = 1
		return result, []domain.Finding{f}
	}

	var (
		names    []string
		findings []domain.Finding
	)
	for _, node := range nodes {
		rec := Classify(node.Fields)
		c := &checker{file: file, line: b.Line, raw: node.Raw, typeName: rec.TypeName(), opts: opts}
		rec.check(c)
		names = append(names, rec.TypeName())
		findings = append(findings, c.findings...)
	}

	result.Type = strings.Join(names, ", ")
	for _, f := range findings {
		if f.IsError() {
			result.Errors++
		} else {
			result.Warnings++
		}
	}
	return result, findings
}

// ValidatePage extracts and validates every block of a page's raw text.
func ValidatePage(file, raw string, opts Options) ([]domain.BlockResult, []domain.Finding) {
	var (
		results  []domain.BlockResult
		findings []domain.Finding
	)
	for _, b := range Extract(raw) {
		r, f := ValidateBlock(file, b, opts)
		results = append(results, r)
		findings = append(findings, f...)
	}
	return results, findings
}
