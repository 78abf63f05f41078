package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sitecheck/sitecheck/internal/application"
	"github.com/sitecheck/sitecheck/internal/domain"
)

// registerResources registers all sitecheck MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc *application.AuditService) {
	// 1. sitecheck://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"sitecheck://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective .sitecheck.yaml configuration with defaults applied"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, svc),
	)

	// 2. sitecheck://history - recorded runs
	s.AddResource(
		mcplib.NewResource(
			"sitecheck://history",
			"Run History",
			mcplib.WithResourceDescription("Audit runs recorded with --record, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath, svc),
	)
}

func handleConfigResource(projectPath string, svc *application.AuditService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.Config(projectPath, application.Overrides{})
		if err != nil {
			return nil, err
		}
		return jsonResource("sitecheck://config", cfg)
	}
}

func handleHistoryResource(projectPath string, svc *application.AuditService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := svc.History(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return jsonResource("sitecheck://history", entries)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
