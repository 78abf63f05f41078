package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sitecheck/sitecheck/internal/adapters/outbound/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	opts := &auditOptions{globals: g}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the audit whenever the build output changes",
		Long:  "Watch the build output directory and sitemap, re-running the audit after every rebuild. Stop with Ctrl-C.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, svc, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			cfg, err := svc.Config(absPath, opts.overrides())
			if err != nil {
				return err
			}

			w, err := watcher.New(absPath, within(absPath, cfg.OutputDir), within(absPath, cfg.Sitemap), log)
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			audit := func() {
				run, err := svc.Audit(absPath, cfg)
				if err != nil {
					log.WithError(err).Error("audit failed")
					return
				}
				if opts.record && !run.NoOutput {
					if err := svc.Record(absPath, run); err != nil {
						log.WithError(err).Warn("run not recorded")
					}
				}
				if err := opts.render(cmd, run, cfg); err != nil {
					log.WithError(err).Error("rendering report failed")
				}
			}

			audit()
			fmt.Fprintf(cmd.OutOrStdout(), "\n  watching %s for changes (Ctrl-C to stop)\n", cfg.OutputDir)
			return w.Run(ctx, audit)
		},
	}
	opts.bind(cmd)
	return cmd
}

func within(projectPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}
