// MCP server implementation for debtscope.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/debtscope/debtscope/internal/version"
	"github.com/debtscope/debtscope/pkg/config"
	"github.com/debtscope/debtscope/pkg/report"
	"github.com/debtscope/debtscope/pkg/scan"
	"github.com/debtscope/debtscope/pkg/store"
)

// mcpLog logs to stderr (stdout is reserved for MCP JSON-RPC protocol).
var mcpLog = log.New(os.Stderr, "[debtscope:mcp] ", log.Ltime)

// MCPServer exposes scanning and stored findings over MCP.
type MCPServer struct {
	root   string
	cfg    *config.Config
	store  *store.Store
	server *mcp.Server
}

// cmdMCP starts the MCP server on stdio.
func cmdMCP(args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	st, err := store.Open(storeDir(root, cfg))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	s := &MCPServer{root: root, cfg: cfg, store: st}
	mcpLog.Printf("MCP server ready, root %s, listening on stdio", root)
	return s.Run()
}

// Run registers the tools and serves over stdio.
func (s *MCPServer) Run() error {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    "debtscope",
			Version: version.Short(),
		},
		nil,
	)
	s.server = srv

	s.registerScanTools()
	s.registerFindingsTools()

	return srv.Run(context.Background(), &mcp.StdioTransport{})
}

type ScanRunInput struct {
	Path string `json:"path,omitempty" jsonschema:"Directory to scan. Defaults to the server's project root."`
}

type ScanSummaryInput struct{}

func (s *MCPServer) registerScanTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "scan_run",
		Description: `Run a technical debt scan over the project and store the result.

Returns the headline numbers: files, findings by severity, debt minutes,
debt ratio, rating (A-E), maintainability index, estimated cost, and risk
score. Use scan_summary to re-read the stored result without rescanning.`,
	}, s.handleScanRun)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "scan_summary",
		Description: `Get the stored result of the most recent scan without rescanning.

Includes debt totals, rating, business impact (worst files, quick wins,
critical path), and the machine-authorship summary.`,
	}, s.handleScanSummary)
}

func (s *MCPServer) handleScanRun(ctx context.Context, _ *mcp.CallToolRequest, input ScanRunInput) (*mcp.CallToolResult, any, error) {
	root := s.root
	if input.Path != "" {
		root = input.Path
	}
	mcpLog.Printf("tool: scan_run root=%s", root)

	res, err := scan.Run(ctx, root, s.cfg)
	if err != nil {
		return errorResult(fmt.Sprintf("scan failed: %v", err)), nil, nil
	}
	if prev, err := s.store.LatestScan(); err == nil {
		res.Trends = report.ComputeTrends(prev, res)
	}
	if err := s.store.SaveScan(res); err != nil {
		return errorResult(fmt.Sprintf("saving scan: %v", err)), nil, nil
	}
	return textResult(formatScanResult(res)), nil, nil
}

func (s *MCPServer) handleScanSummary(_ context.Context, _ *mcp.CallToolRequest, _ ScanSummaryInput) (*mcp.CallToolResult, any, error) {
	mcpLog.Printf("tool: scan_summary")

	res, err := s.store.LatestScan()
	if err != nil {
		return errorResult("no stored scan; run scan_run first"), nil, nil
	}
	return textResult(formatScanResult(res)), nil, nil
}

type FindingsListInput struct {
	Severity string `json:"severity,omitempty" jsonschema:"Filter by severity: blocker, critical, major, minor, info"`
	Kind     string `json:"kind,omitempty" jsonschema:"Filter by finding kind, e.g. long_method, hardcoded_secret"`
	File     string `json:"file,omitempty" jsonschema:"Filter by exact file path"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default 100)"`
}

type FindingsSearchInput struct {
	Query    string `json:"query" jsonschema:"Full-text query over finding messages. Supports bleve query syntax."`
	Severity string `json:"severity,omitempty" jsonschema:"Filter by severity: blocker, critical, major, minor, info"`
	Kind     string `json:"kind,omitempty" jsonschema:"Filter by finding kind"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20)"`
}

type FindingsStatsInput struct{}

func (s *MCPServer) registerFindingsTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "findings_list",
		Description: `List stored findings from the latest scan with optional filters.

**When to use:**
- "What issues are in src/auth.ts?" -> filter by file
- "Show me all blockers" -> filter by severity
- "Any hardcoded secrets?" -> filter by kind=hardcoded_secret

**Severities:** blocker, critical, major, minor, info
**Kinds:** long_method, large_file, magic_number, deep_nesting, dead_code,
code_duplication, missing_error_handling, hardcoded_secret, sql_injection,
markup_injection, insecure_random, dynamic_eval, risky_exec`,
	}, s.handleFindingsList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "findings_search",
		Description: `Search stored findings by keyword using full-text search.

Searches finding messages. Use when looking for findings about a specific
function, pattern, or issue by name. Use findings_list to browse by filter
without a keyword.`,
	}, s.handleFindingsSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "findings_stats",
		Description: `Get finding counts by severity and kind for the stored scan.

A quick health overview without the full finding list.`,
	}, s.handleFindingsStats)
}

func (s *MCPServer) handleFindingsList(_ context.Context, _ *mcp.CallToolRequest, input FindingsListInput) (*mcp.CallToolResult, any, error) {
	mcpLog.Printf("tool: findings_list severity=%s kind=%s file=%s", input.Severity, input.Kind, input.File)

	limit := input.Limit
	if limit == 0 {
		limit = 100
	}
	findings, err := s.store.ListFindings(store.FilterOptions{
		Severity: input.Severity,
		Kind:     input.Kind,
		File:     input.File,
		Limit:    limit,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("listing findings: %v", err)), nil, nil
	}
	if len(findings) == 0 {
		return textResult("No findings found."), nil, nil
	}

	out := fmt.Sprintf("Found %d findings:\n\n", len(findings))
	for _, f := range findings {
		out += formatFindingLine(f)
	}
	return textResult(out), nil, nil
}

func (s *MCPServer) handleFindingsSearch(_ context.Context, _ *mcp.CallToolRequest, input FindingsSearchInput) (*mcp.CallToolResult, any, error) {
	mcpLog.Printf("tool: findings_search query=%q severity=%s kind=%s", input.Query, input.Severity, input.Kind)

	hits, err := s.store.SearchFindings(input.Query, store.FilterOptions{
		Severity: input.Severity,
		Kind:     input.Kind,
		Limit:    input.Limit,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("search failed: %v", err)), nil, nil
	}
	if len(hits) == 0 {
		return textResult("No findings found."), nil, nil
	}

	out := fmt.Sprintf("Found %d findings:\n\n", len(hits))
	for _, h := range hits {
		out += formatFindingLine(h.Finding)
	}
	return textResult(out), nil, nil
}

func (s *MCPServer) handleFindingsStats(_ context.Context, _ *mcp.CallToolRequest, _ FindingsStatsInput) (*mcp.CallToolResult, any, error) {
	mcpLog.Printf("tool: findings_stats")

	bySeverity, byKind, err := s.store.Stats()
	if err != nil {
		return errorResult(fmt.Sprintf("reading stats: %v", err)), nil, nil
	}

	payload, err := json.MarshalIndent(map[string]any{
		"bySeverity": bySeverity,
		"byKind":     byKind,
	}, "", "  ")
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult(string(payload)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + message},
		},
		IsError: true,
	}
}
