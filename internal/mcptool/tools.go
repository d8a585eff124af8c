// Package mcptool exposes vault validation and export as MCP tools, so
// editor agents can drive exports over the Model Context Protocol.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atlanticdynamic/vaultlight/internal/config"
	"github.com/atlanticdynamic/vaultlight/internal/export"
	"github.com/atlanticdynamic/vaultlight/internal/vault"
)

// Service bundles the dependencies the tools need.
type Service struct {
	handler slog.Handler
	logger  *slog.Logger
}

// New creates a tool service logging through the given handler.
func New(handler slog.Handler) *Service {
	return &Service{
		handler: handler,
		logger:  slog.New(handler).WithGroup("mcptool"),
	}
}

// Register registers all vaultlight tools on an MCP server.
func (s *Service) Register(srv *mcp.Server) {
	s.registerValidateTool(srv)
	s.registerExportTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		var res mcp.CallToolResult
		res.SetError(fmt.Errorf("marshal: %w", err))
		return &res, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res, nil
}

// --- validate_vault ---

type validateReq struct {
	VaultPath string `json:"vault_path"`
}

func (s *Service) registerValidateTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "validate_vault",
		Description: "Validate the structure of an Obsidian vault without modifying it. Returns errors, warnings and suggestions.",
		InputSchema: inputSchema(map[string]any{
			"vault_path": map[string]any{"type": "string", "description": "Path to the vault root"},
		}, []string{"vault_path"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r validateReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err))
		}

		validator := vault.NewValidator(vault.WithLogger(s.logger))
		res := validator.Validate(r.VaultPath)
		return textResult(res)
	})
}

// --- export_vault ---

type exportReq struct {
	VaultPath  string `json:"vault_path"`
	DestPath   string `json:"dest_path"`
	ConfigPath string `json:"config_path,omitempty"`
}

func (s *Service) registerExportTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "export_vault",
		Description: "Export an Obsidian vault as a static website. Incremental: only changed files are rewritten.",
		InputSchema: inputSchema(map[string]any{
			"vault_path":  map[string]any{"type": "string", "description": "Path to the vault root"},
			"dest_path":   map[string]any{"type": "string", "description": "Destination directory for the exported site"},
			"config_path": map[string]any{"type": "string", "description": "Optional path to a vaultlight TOML settings file"},
		}, []string{"vault_path", "dest_path"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r exportReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err))
		}

		fileOverlay, err := config.LoadFile(r.ConfigPath)
		if err != nil {
			return errorResult(err)
		}
		cfg := config.Resolve(fileOverlay, config.FromEnv(s.logger))

		run, err := export.NewRun(r.VaultPath, r.DestPath, cfg, s.handler)
		if err != nil {
			return errorResult(err)
		}

		rep, runErr := run.Execute(ctx)
		if runErr != nil {
			if rep != nil {
				// The report summary carries the failure detail.
				return errorResult(fmt.Errorf("%s", rep.Summary()))
			}
			return errorResult(runErr)
		}
		return textResult(rep)
	})
}
