package domain

import (
	"encoding/json"
	"time"
)

// BlockResult summarizes one structured-data block for per-file status lines.
type BlockResult struct {
	Line     int    `json:"line"`
	Type     string `json:"type"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// PageResult is the per-document outcome of a run.
type PageResult struct {
	Path     string        `json:"path"`
	Skipped  bool          `json:"skipped,omitempty"`
	Blocks   []BlockResult `json:"blocks,omitempty"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
}

// HasSchema reports whether at least one block was found on the page,
// including blocks that failed to parse.
func (p PageResult) HasSchema() bool { return len(p.Blocks) > 0 }

// Summary holds the derived counts of a run.
type Summary struct {
	FilesScanned    int `json:"files_scanned"`
	FilesWithSchema int `json:"files_with_schema"`
	SchemaBlocks    int `json:"schema_blocks"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
}

// ValidationRun aggregates everything one invocation produced. It is built
// by the audit service and only read afterwards.
type ValidationRun struct {
	OutputDir string       `json:"output_dir"`
	Revision  *Revision    `json:"revision,omitempty"`
	StartedAt time.Time    `json:"started_at"`
	NoOutput  bool         `json:"no_output,omitempty"`
	Pages     []PageResult `json:"pages"`
	Findings  []Finding    `json:"findings"`
}

// NewValidationRun creates an empty run for outputDir.
func NewValidationRun(outputDir string) *ValidationRun {
	return &ValidationRun{
		OutputDir: outputDir,
		StartedAt: time.Now(),
		Pages:     []PageResult{},
		Findings:  []Finding{},
	}
}

// Add appends findings to the run and to the matching page counters.
func (r *ValidationRun) Add(findings ...Finding) {
	for _, f := range findings {
		r.Findings = append(r.Findings, f)
		if p := r.page(f.File); p != nil {
			if f.IsError() {
				p.Errors++
			} else {
				p.Warnings++
			}
		}
	}
}

// AddPage registers a page result. Pages are kept in processing order.
func (r *ValidationRun) AddPage(p PageResult) {
	r.Pages = append(r.Pages, p)
}

func (r *ValidationRun) page(path string) *PageResult {
	for i := len(r.Pages) - 1; i >= 0; i-- {
		if r.Pages[i].Path == path {
			return &r.Pages[i]
		}
	}
	return nil
}

// Errors returns error-severity findings in the order they were added.
func (r *ValidationRun) Errors() []Finding { return r.filter(SeverityError) }

// Warnings returns warning-severity findings in the order they were added.
func (r *ValidationRun) Warnings() []Finding { return r.filter(SeverityWarning) }

func (r *ValidationRun) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// KindGroup is a set of findings sharing a kind.
type KindGroup struct {
	Kind     Kind
	Findings []Finding
}

// ErrorsByKind groups errors by kind, ordering groups by first appearance.
func (r *ValidationRun) ErrorsByKind() []KindGroup {
	var groups []KindGroup
	index := make(map[Kind]int)
	for _, f := range r.Errors() {
		i, ok := index[f.Kind]
		if !ok {
			i = len(groups)
			index[f.Kind] = i
			groups = append(groups, KindGroup{Kind: f.Kind})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups
}

// FindingsFor returns the findings whose subject is file.
func (r *ValidationRun) FindingsFor(file string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.File == file {
			out = append(out, f)
		}
	}
	return out
}

// Summary derives the aggregate counts.
func (r *ValidationRun) Summary() Summary {
	s := Summary{FilesScanned: len(r.Pages)}
	for _, p := range r.Pages {
		if p.HasSchema() {
			s.FilesWithSchema++
		}
		s.SchemaBlocks += len(p.Blocks)
	}
	for _, f := range r.Findings {
		if f.IsError() {
			s.Errors++
		} else {
			s.Warnings++
		}
	}
	return s
}

// Passed is true iff no error-severity finding exists.
func (r *ValidationRun) Passed() bool {
	for _, f := range r.Findings {
		if f.IsError() {
			return false
		}
	}
	return true
}

// MarshalJSON adds the derived summary and outcome to the encoded run.
func (r *ValidationRun) MarshalJSON() ([]byte, error) {
	type plain ValidationRun
	return json.Marshal(struct {
		*plain
		Summary Summary `json:"summary"`
		Passed  bool    `json:"passed"`
	}{(*plain)(r), r.Summary(), r.Passed()})
}
