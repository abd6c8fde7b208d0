package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/visulog/core"
	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	client contract.GitClient
	mgr    contract.CacheManager
}

func (h *toolHandler) handleRunAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plugins := contract.SplitList(request.GetString("plugins", ""))
	repoPath := request.GetString("repo_path", "")

	cfg, err := schema.NewConfiguration(repoPath, plugins)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}

	analyzer := core.NewAnalyzer(cfg, h.client, h.mgr)
	result, err := analyzer.ComputeResults(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	type pluginOutput struct {
		Text string `json:"text"`
		HTML string `json:"html"`
	}
	outputs := make([]pluginOutput, 0, result.Len())
	for _, sub := range result.SubResults() {
		outputs = append(outputs, pluginOutput{Text: sub.String(), HTML: sub.HTML()})
	}

	jsonData, _ := json.MarshalIndent(outputs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListPlugins(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.PluginInfos(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
