package domain

// Severity classifies a Finding. Only errors fail a run.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind identifies the rule that produced a Finding.
type Kind string

const (
	KindBrokenLink        Kind = "broken-link"
	KindMissingAnchor     Kind = "missing-anchor"
	KindMissingAlt        Kind = "missing-alt"
	KindEmptyAlt          Kind = "empty-alt"
	KindMissingMetaDesc   Kind = "missing-meta-desc"
	KindEmptyMetaDesc     Kind = "empty-meta-desc"
	KindLongMetaDesc      Kind = "long-meta-desc"
	KindMultipleMetaDesc  Kind = "multiple-meta-desc"
	KindMissingCanonical  Kind = "missing-canonical"
	KindCanonicalMismatch Kind = "canonical-mismatch"
	KindDuplicateID       Kind = "duplicate-id"
	KindParseError        Kind = "parse-error"
	KindSitemapMissing    Kind = "sitemap-missing"
	KindSitemapOrphan     Kind = "sitemap-orphan"
	KindSitemapStale      Kind = "sitemap-stale"
	KindMissingH1         Kind = "missing-h1"
	KindMultipleH1        Kind = "multiple-h1"
	KindHeadingSkip       Kind = "heading-skip"
	KindMissingTitle      Kind = "missing-title"
	KindDuplicateTitle    Kind = "duplicate-title"

	KindInvalidJSON             Kind = "invalid-json"
	KindSchemaRequiredField     Kind = "schema-required-field"
	KindSchemaDuplicateProperty Kind = "schema-duplicate-property"
	KindSchemaInvalidValue      Kind = "schema-invalid-value"
	KindSchemaRecommendation    Kind = "schema-recommendation"
	KindUnknownSchemaType       Kind = "unknown-schema-type"
)

var kindSeverity = map[Kind]Severity{
	KindBrokenLink:        SeverityError,
	KindMissingAnchor:     SeverityWarning,
	KindMissingAlt:        SeverityError,
	KindEmptyAlt:          SeverityWarning,
	KindMissingMetaDesc:   SeverityError,
	KindEmptyMetaDesc:     SeverityError,
	KindLongMetaDesc:      SeverityWarning,
	KindMultipleMetaDesc:  SeverityWarning,
	KindMissingCanonical:  SeverityWarning,
	KindCanonicalMismatch: SeverityError,
	KindDuplicateID:       SeverityError,
	KindParseError:        SeverityWarning,
	KindSitemapMissing:    SeverityWarning,
	KindSitemapOrphan:     SeverityWarning,
	KindSitemapStale:      SeverityWarning,
	KindMissingH1:         SeverityWarning,
	KindMultipleH1:        SeverityWarning,
	KindHeadingSkip:       SeverityWarning,
	KindMissingTitle:      SeverityWarning,
	KindDuplicateTitle:    SeverityWarning,

	KindInvalidJSON:             SeverityError,
	KindSchemaRequiredField:     SeverityError,
	KindSchemaDuplicateProperty: SeverityError,
	KindSchemaInvalidValue:      SeverityError,
	KindSchemaRecommendation:    SeverityWarning,
	KindUnknownSchemaType:       SeverityWarning,
}

// SeverityOf returns the fixed severity for a kind. Unknown kinds are warnings.
func SeverityOf(k Kind) Severity {
	if s, ok := kindSeverity[k]; ok {
		return s
	}
	return SeverityWarning
}

// Finding is a single validation result. Findings are never mutated once
// appended to a run.
type Finding struct {
	Kind       Kind     `json:"kind"`
	Severity   Severity `json:"severity"`
	File       string   `json:"file"`
	Line       int      `json:"line,omitempty"`
	Element    string   `json:"element,omitempty"`
	Related    string   `json:"related,omitempty"`
	SchemaType string   `json:"schema_type,omitempty"`
	Message    string   `json:"message"`
}

// NewFinding builds a Finding with the severity implied by its kind.
func NewFinding(kind Kind, file, message string) Finding {
	return Finding{
		Kind:     kind,
		Severity: SeverityOf(kind),
		File:     file,
		Message:  message,
	}
}

// WithElement returns a copy of f carrying an element snippet.
func (f Finding) WithElement(snippet string) Finding {
	f.Element = snippet
	return f
}

// IsError reports whether the finding fails the run.
func (f Finding) IsError() bool { return f.Severity == SeverityError }
