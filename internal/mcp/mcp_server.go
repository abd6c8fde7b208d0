// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the visulog MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(client contract.GitClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Visulog Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		client: client,
		mgr:    mgr,
	}

	// --- 1. Tool: run_analysis ---
	s.AddTool(mcp.NewTool("run_analysis",
		mcp.WithDescription("Run git-log analyzer plugins against a repository and return their results."),
		mcp.WithString("plugins", mcp.Description("Comma-separated plugin names to run (e.g. 'authors,churn')."), mcp.Required()),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
	), h.handleRunAnalysis)

	// --- 2. Tool: list_plugins ---
	s.AddTool(mcp.NewTool("list_plugins",
		mcp.WithDescription("List the available analyzer plugins and what they compute."),
	), h.handleListPlugins)

	return s
}

// StartMCPServer starts the visulog MCP server on stdio.
func StartMCPServer(_ context.Context, client contract.GitClient, mgr contract.CacheManager) error {
	s := NewMCPServer(client, mgr)
	return server.ServeStdio(s)
}
