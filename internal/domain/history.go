package domain

// Revision identifies the commit the audited output was built from.
type Revision struct {
	Hash   string `json:"hash"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// Short returns the abbreviated hash, suffixed with "+" for dirty trees.
func (r Revision) Short() string {
	h := r.Hash
	if len(h) > 7 {
		h = h[:7]
	}
	if r.Dirty {
		h += "+"
	}
	return h
}

// RunEntry is one recorded audit in the run history.
type RunEntry struct {
	Timestamp string `json:"timestamp"`
	Commit    string `json:"commit,omitempty"`
	Files     int    `json:"files"`
	Errors    int    `json:"errors"`
	Warnings  int    `json:"warnings"`
	Passed    bool   `json:"passed"`
}
