package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sitecheck/sitecheck/internal/application"
)

// NewSitecheckMCPServer creates a new MCP server with all sitecheck tools and
// resources registered. The projectPath is the root directory of the site
// project to audit.
func NewSitecheckMCPServer(projectPath string, svc *application.AuditService) *server.MCPServer {
	s := server.NewMCPServer(
		"sitecheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
