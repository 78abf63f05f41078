package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/config"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/gitinfo"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/history"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/loader"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/sitemap"
	"github.com/sitecheck/sitecheck/internal/adapters/outbound/tui"
	"github.com/sitecheck/sitecheck/internal/application"
	"github.com/sitecheck/sitecheck/internal/domain"
	"github.com/spf13/cobra"
)

type auditOptions struct {
	globals    *globalFlags
	path       string
	outputDir  string
	sitemap    string
	baseURL    string
	only       string
	jsonOutput bool
	record     bool
}

func (o *auditOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.path, "path", ".", "Project root containing the build output and sitemap")
	f.StringVar(&o.outputDir, "out", "", "Build output directory, relative to --path (default from config: dist)")
	f.StringVar(&o.sitemap, "sitemap", "", "Sitemap file, relative to --path (default from config: sitemap.xml)")
	f.StringVar(&o.baseURL, "base-url", "", "Site origin stripped from sitemap URLs")
	f.StringVar(&o.only, "only", "", `Run only one check group: "html" or "schema"`)
	f.BoolVar(&o.jsonOutput, "json", false, "Output the run as JSON")
	f.BoolVar(&o.record, "record", false, "Append a run summary to .sitecheck/history")
}

func (o *auditOptions) overrides() application.Overrides {
	return application.Overrides{
		OutputDir: o.outputDir,
		Sitemap:   o.sitemap,
		BaseURL:   o.baseURL,
		Only:      o.only,
	}
}

// setup resolves the project path and builds the service for a command.
func (o *auditOptions) setup(cmd *cobra.Command) (string, *application.AuditService, *logrus.Entry, error) {
	absPath, err := filepath.Abs(o.path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("resolving path: %w", err)
	}
	log, err := newLogger(o.globals.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return "", nil, nil, err
	}
	return absPath, newAuditService(log), log, nil
}

func (o *auditOptions) run(cmd *cobra.Command, args []string) error {
	absPath, svc, log, err := o.setup(cmd)
	if err != nil {
		return err
	}

	run, cfg, err := svc.Run(absPath, o.overrides())
	if err != nil {
		return err
	}

	if o.record && !run.NoOutput {
		if err := svc.Record(absPath, run); err != nil {
			log.WithError(err).Warn("run not recorded")
		}
	}

	if err := o.render(cmd, run, cfg); err != nil {
		return err
	}
	if !run.Passed() {
		return ErrAuditFailed
	}
	return nil
}

func (o *auditOptions) render(cmd *cobra.Command, run *domain.ValidationRun, cfg domain.SiteConfig) error {
	switch {
	case o.jsonOutput:
		return renderJSON(cmd, run)
	case run.NoOutput:
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderNoOutput(run.OutputDir))
	default:
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderRun(run, tui.Options{WarningPreview: cfg.WarningPreview}))
	}
	return nil
}

func newAuditCmd(g *globalFlags) *cobra.Command {
	opts := &auditOptions{globals: g}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the build output (same as running sitecheck without a command)",
		Args:  cobra.NoArgs,
		RunE:  opts.run,
	}
	opts.bind(cmd)
	return cmd
}

func newAuditService(log *logrus.Entry) *application.AuditService {
	return application.NewAuditService(
		loader.New(),
		sitemap.New(),
		config.New(),
		gitinfo.New(),
		history.New(),
		log,
	)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
