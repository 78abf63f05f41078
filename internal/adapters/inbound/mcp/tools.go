package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sitecheck/sitecheck/internal/application"
	"github.com/sitecheck/sitecheck/internal/domain"
)

// registerTools registers all sitecheck MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc *application.AuditService) {
	// 1. sitecheck_audit
	s.AddTool(
		mcplib.NewTool("sitecheck_audit",
			mcplib.WithDescription("Audits the site build output and returns the full run (pages, findings, summary) as JSON"),
			mcplib.WithString("only", mcplib.Description(`Restrict to one check group: "html" or "schema"`)),
			mcplib.WithString("out", mcplib.Description("Build output directory relative to the project root (default from config)")),
		),
		handleAudit(projectPath, svc),
	)

	// 2. sitecheck_check_page
	s.AddTool(
		mcplib.NewTool("sitecheck_check_page",
			mcplib.WithDescription("Returns the findings for a single generated page"),
			mcplib.WithString("page",
				mcplib.Required(),
				mcplib.Description("Page path relative to the build output directory, e.g. blog/index.html"),
			),
		),
		handleCheckPage(projectPath, svc),
	)
}

func overridesFrom(request mcplib.CallToolRequest) application.Overrides {
	return application.Overrides{
		Only:      request.GetString("only", ""),
		OutputDir: request.GetString("out", ""),
	}
}

func handleAudit(projectPath string, svc *application.AuditService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		run, _, err := svc.Run(projectPath, overridesFrom(request))
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}
		if run.NoOutput {
			return textResult(fmt.Sprintf("No build output at %s. Run the site build first.", run.OutputDir)), nil
		}
		return jsonResult(run)
	}
}

// pageReport is the payload of sitecheck_check_page.
type pageReport struct {
	Page     string           `json:"page"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
	Findings []domain.Finding `json:"findings"`
}

func handleCheckPage(projectPath string, svc *application.AuditService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		page, err := request.RequireString("page")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		findings, err := svc.CheckPage(projectPath, application.Overrides{}, page)
		if errors.Is(err, application.ErrPageNotFound) {
			return errorResult(fmt.Sprintf("page %q is not in the build output", page)), nil
		}
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}

		report := pageReport{Page: page, Findings: findings}
		if report.Findings == nil {
			report.Findings = []domain.Finding{}
		}
		for _, f := range findings {
			if f.IsError() {
				report.Errors++
			} else {
				report.Warnings++
			}
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
