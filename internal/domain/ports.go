package domain

// DocumentLoader enumerates and parses the generated HTML tree.
type DocumentLoader interface {
	// Load returns every parsed HTML document under root plus a parse-error
	// finding per file that could not be loaded. It returns ErrNoBuildOutput
	// when root does not exist.
	Load(root string) ([]*Document, []Finding, error)
	// ParseFile parses a single file outside the main pass.
	ParseFile(path string) (*Document, error)
}

// SitemapReader builds the sitemap index. A missing artifact yields an index
// with Present=false and no error.
type SitemapReader interface {
	Read(path, baseURL string) (SitemapIndex, error)
}

// ConfigLoader loads .sitecheck.yaml from a project root.
type ConfigLoader interface {
	Load(projectPath string) (SiteConfig, error)
}

// RevisionReader looks up the VCS revision of the site project.
type RevisionReader interface {
	Revision(projectPath string) (*Revision, error)
}

// RunHistory persists run summaries.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}
