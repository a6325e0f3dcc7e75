// Package mcptools exposes file analysis as Model Context Protocol tools.
// Only dry-run planning is offered; nothing here moves files.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/naming"
	"github.com/kirillkom/smartname/internal/core/ports"
)

const (
	ToolSuggestFilename = "suggest_filename"
	ToolCategorizeFile  = "categorize_file"
	ToolPlanDirectory   = "plan_directory"
)

type Server struct {
	analyzer  ports.FileAnalyzer
	organizer ports.FileOrganizer
	logger    *slog.Logger
}

func NewServer(analyzer ports.FileAnalyzer, organizer ports.FileOrganizer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{analyzer: analyzer, organizer: organizer, logger: logger}
}

// MCPServer registers every tool on a fresh protocol server.
func (s *Server) MCPServer(name, version string) *server.MCPServer {
	srv := server.NewMCPServer(name, version, server.WithToolCapabilities(false))
	srv.AddTool(suggestFilenameTool(), s.handleSuggestFilename)
	srv.AddTool(categorizeFileTool(), s.handleCategorizeFile)
	srv.AddTool(planDirectoryTool(), s.handlePlanDirectory)
	return srv
}

// ServeStdio blocks serving the tools over stdin/stdout.
func (s *Server) ServeStdio(name, version string) error {
	return server.ServeStdio(s.MCPServer(name, version))
}

func suggestFilenameTool() mcp.Tool {
	return mcp.NewTool(
		ToolSuggestFilename,
		mcp.WithDescription("Suggest a descriptive filename for a local file by asking a vision or text model about its content. The file is not renamed."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the file to analyze"),
		),
		mcp.WithString("case_style",
			mcp.Description("Case style of the suggested name"),
			mcp.Enum(styleNames()...),
			mcp.DefaultString(string(naming.Snake)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func categorizeFileTool() mcp.Tool {
	return mcp.NewTool(
		ToolCategorizeFile,
		mcp.WithDescription("Assign a local file to one of the given categories based on its content."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the file to categorize"),
		),
		mcp.WithArray("categories",
			mcp.Description("Candidate category labels. Defaults to the built-in set; 'other' is always added."),
			mcp.WithStringItems(),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func planDirectoryTool() mcp.Tool {
	return mcp.NewTool(
		ToolPlanDirectory,
		mcp.WithDescription("Compute the rename or organize plan for a directory without changing anything. Returns the planned moves and per-file failures as JSON."),
		mcp.WithString("directory",
			mcp.Required(),
			mcp.Description("Absolute path of the directory to plan"),
		),
		mcp.WithString("mode",
			mcp.Description("rename keeps files in place, organize sorts them into category folders"),
			mcp.Enum(string(domain.ModeRename), string(domain.ModeOrganize)),
			mcp.DefaultString(string(domain.ModeRename)),
		),
		mcp.WithString("case_style",
			mcp.Enum(styleNames()...),
			mcp.DefaultString(string(naming.Snake)),
		),
		mcp.WithArray("categories",
			mcp.Description("Category labels used in organize mode"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean("rename_in_folders",
			mcp.Description("Also rename files when organizing"),
			mcp.DefaultBool(false),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (s *Server) handleSuggestFilename(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	path, err := requiredString(args, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	style := optionalString(args, "case_style", string(naming.Snake))

	name, err := s.analyzer.SuggestName(ctx, path, style)
	if err != nil {
		s.logger.Warn("mcp_tool_failed", "tool", ToolSuggestFilename, "path", path, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(name), nil
}

func (s *Server) handleCategorizeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	path, err := requiredString(args, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	labels, err := stringList(args, "categories")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	label, err := s.analyzer.Categorize(ctx, path, labels)
	if err != nil {
		s.logger.Warn("mcp_tool_failed", "tool", ToolCategorizeFile, "path", path, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(label), nil
}

type planResponse struct {
	RunID    string               `json:"run_id"`
	Scanned  int                  `json:"scanned"`
	Entries  []domain.PlanEntry   `json:"entries"`
	Failures []domain.FileFailure `json:"failures,omitempty"`
}

func (s *Server) handlePlanDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	dir, err := requiredString(args, "directory")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	labels, err := stringList(args, "categories")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	renameInFolders, _ := args["rename_in_folders"].(bool)

	report, err := s.organizer.Run(ctx, domain.RunRequest{
		Directory:       dir,
		Mode:            domain.Mode(optionalString(args, "mode", string(domain.ModeRename))),
		CaseStyle:       optionalString(args, "case_style", string(naming.Snake)),
		Categories:      labels,
		RenameInFolders: renameInFolders,
	}, nil)
	if err != nil {
		s.logger.Warn("mcp_tool_failed", "tool", ToolPlanDirectory, "directory", dir, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries := report.Plan.Entries
	if entries == nil {
		entries = []domain.PlanEntry{}
	}
	return toolResultJSON(planResponse{
		RunID:    report.RunID,
		Scanned:  report.Scanned,
		Entries:  entries,
		Failures: report.Failures,
	})
}

func toolResultJSON(data any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}

func arguments(request mcp.CallToolRequest) (map[string]any, error) {
	if request.Params.Arguments == nil {
		return map[string]any{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid arguments type: expected object, got %T", request.Params.Arguments)
	}
	return args, nil
}

func requiredString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func optionalString(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func stringList(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", key, i)
		}
		out = append(out, s)
	}
	return out, nil
}

func styleNames() []string {
	names := make([]string, 0, len(naming.Styles))
	for _, style := range naming.Styles {
		names = append(names, string(style))
	}
	return names
}
