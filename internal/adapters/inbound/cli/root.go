package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// ErrAuditFailed is returned when a run completed with error findings. The
// report has already been written, so callers only set the exit code.
var ErrAuditFailed = errors.New("audit found errors")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	opts := &auditOptions{globals: g}

	cmd := &cobra.Command{
		Use:   "sitecheck",
		Short: "Audit a generated static site before it ships",
		Long: "sitecheck validates the HTML output of a static site build: internal links and anchors, " +
			"alt text, meta descriptions, canonical URLs, duplicate IDs and JSON-LD structured data.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          opts.run,
	}
	opts.bind(cmd)
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newAuditCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newHistoryCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// Main runs the CLI and returns the process exit code. Failures other than
// ErrAuditFailed are printed to stderr.
func Main(stderr io.Writer) int {
	if err := Execute(); err != nil {
		if !errors.Is(err, ErrAuditFailed) {
			fmt.Fprintf(stderr, "sitecheck: %v\n", err)
		}
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show sitecheck version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "sitecheck %s (%s)\n", version, commit)
			return nil
		},
	}
}
