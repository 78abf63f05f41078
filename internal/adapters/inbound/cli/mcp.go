package cli

import (
	mcpadapter "github.com/sitecheck/sitecheck/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the sitecheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globalFlags) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start sitecheck MCP server (stdio)",
		Long:  "Start the sitecheck MCP server using stdio transport. This lets AI coding assistants audit the site and inspect findings for single pages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			// stdout carries the protocol, so logs go to stderr.
			log, err := newLogger(g.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			s := mcpadapter.NewSitecheckMCPServer(projectPath, newAuditService(log))
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
