// ABOUTME: MCP tools for scrap operations on the board.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/render"
)

func (s *Server) registerTools() {
	// add_scrap
	s.server.AddTool(&mcp.Tool{
		Name:        "add_scrap",
		Description: "Save a scrap to the board: a note, image, link, or code snippet",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"type": {"type": "string", "enum": ["note", "image", "link", "code"], "description": "Scrap type"},
				"content": {"type": "string", "description": "Note text (note type)"},
				"url": {"type": "string", "description": "Image or link URL (image/link types)"},
				"title": {"type": "string", "description": "Optional title (image/link types)"},
				"language": {"type": "string", "description": "Syntax highlighting language (code type)"},
				"code": {"type": "string", "description": "Code body (code type)"}
			},
			"required": ["type"]
		}`),
	}, s.handleAddScrap)

	// list_scraps
	s.server.AddTool(&mcp.Tool{
		Name:        "list_scraps",
		Description: "List scraps on the board, newest first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"type": {"type": "string", "description": "Filter by scrap type"},
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListScraps)

	// get_scrap
	s.server.AddTool(&mcp.Tool{
		Name:        "get_scrap",
		Description: "Get a scrap by ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scrap ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetScrap)

	// delete_scrap
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_scrap",
		Description: "Delete a scrap from the board",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scrap ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteScrap)

	// resolve_scrap
	s.server.AddTool(&mcp.Tool{
		Name:        "resolve_scrap",
		Description: "Report which render variant a scrap resolves to",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scrap ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleResolveScrap)

	// export_scrap
	s.server.AddTool(&mcp.Tool{
		Name:        "export_scrap",
		Description: "Export a scrap as JSON or markdown",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scrap ID or prefix"},
				"format": {"type": "string", "description": "Format: json or md", "default": "json"}
			},
			"required": ["id"]
		}`),
	}, s.handleExportScrap)
}

func toolError(msg string, args ...interface{}) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(msg, args...)},
		},
		IsError: true,
	}
}

func toolText(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}

// findScrap resolves a full UUID or a 6+ character prefix to one scrap.
func (s *Server) findScrap(ctx context.Context, idStr string) (models.Scrap, error) {
	if id, parseErr := uuid.Parse(idStr); parseErr == nil {
		for _, scrap := range s.board.Scraps() {
			if scrap.ID == id {
				return scrap, nil
			}
		}
	}
	return s.store.GetByPrefix(ctx, s.userID, idStr)
}

// Tool handlers.
func (s *Server) handleAddScrap(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Type     string `json:"type"`
		Content  string `json:"content"`
		URL      string `json:"url"`
		Title    string `json:"title"`
		Language string `json:"language"`
		Code     string `json:"code"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	var draft models.Draft
	switch models.Type(params.Type) {
	case models.TypeNote:
		draft = models.NewNoteDraft(params.Content)
	case models.TypeImage:
		draft = models.NewImageDraft(params.URL, params.Title)
	case models.TypeLink:
		draft = models.NewLinkDraft(params.URL, params.Title)
	case models.TypeCode:
		draft = models.NewCodeDraft(params.Language, params.Code)
	default:
		return toolError("unknown scrap type: %s", params.Type), nil
	}

	if err := draft.Validate(); err != nil {
		return toolError("invalid scrap: %v", err), nil
	}

	scrap, err := s.board.Add(ctx, draft)
	if err != nil {
		return toolError("failed to add scrap: %v", err), nil
	}

	return toolText(fmt.Sprintf("Created %s scrap %s", scrap.Type, scrap.ID.String())), nil
}

func (s *Server) handleListScraps(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Type  string `json:"type"`
		Limit int    `json:"limit"`
	}
	params.Limit = 20 // default
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	var out []models.Scrap
	for _, scrap := range s.board.Scraps() {
		if params.Type != "" && string(scrap.Type) != params.Type {
			continue
		}
		out = append(out, scrap)
		if len(out) >= params.Limit {
			break
		}
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	return toolText(string(data)), nil
}

func (s *Server) handleGetScrap(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	scrap, err := s.findScrap(ctx, params.ID)
	if err != nil {
		return toolError("failed to get scrap: %v", err), nil
	}

	data, _ := json.MarshalIndent(scrap, "", "  ")
	return toolText(string(data)), nil
}

func (s *Server) handleDeleteScrap(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	scrap, err := s.findScrap(ctx, params.ID)
	if err != nil {
		return toolError("failed to find scrap: %v", err), nil
	}
	if err := s.board.Delete(ctx, scrap.ID); err != nil {
		return toolError("failed to delete scrap: %v", err), nil
	}

	return toolText(fmt.Sprintf("Deleted scrap %s", scrap.ID.String())), nil
}

func (s *Server) handleResolveScrap(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	scrap, err := s.findScrap(ctx, params.ID)
	if err != nil {
		return toolError("failed to find scrap: %v", err), nil
	}

	res := render.Resolve(scrap, render.Flags{})
	out := map[string]interface{}{
		"variant":        string(res.Variant),
		"expandable":     res.Expandable,
		"card_clickable": res.CardClickable,
	}
	if scrap.Type == models.TypeLink {
		out["link_state"] = res.LinkState.String()
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	return toolText(string(data)), nil
}

func (s *Server) handleExportScrap(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID     string `json:"id"`
		Format string `json:"format"`
	}
	params.Format = "json"
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	scrap, err := s.findScrap(ctx, params.ID)
	if err != nil {
		return toolError("failed to find scrap: %v", err), nil
	}

	switch params.Format {
	case "json":
		data, _ := json.MarshalIndent(scrap, "", "  ")
		return toolText(string(data)), nil
	case "md":
		return toolText(scrapMarkdown(scrap)), nil
	default:
		return toolError("unknown format: %s", params.Format), nil
	}
}

// scrapMarkdown renders one scrap as a standalone markdown document.
func scrapMarkdown(scrap models.Scrap) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", scrap.Title()))

	switch scrap.Type {
	case models.TypeNote:
		sb.WriteString(scrap.Note.Content + "\n")
	case models.TypeImage:
		sb.WriteString(fmt.Sprintf("![%s](%s)\n", scrap.Image.Title, scrap.Image.URL))
	case models.TypeLink:
		sb.WriteString(fmt.Sprintf("<%s>\n", scrap.Link.URL))
		if scrap.Link.Meta != nil {
			sb.WriteString(fmt.Sprintf("\n**Rating:** %s\n", scrap.Link.Meta.Rating))
			if len(scrap.Link.Meta.Tags) > 0 {
				sb.WriteString(fmt.Sprintf("**Tags:** %s\n", strings.Join(scrap.Link.Meta.Tags, ", ")))
			}
		}
	case models.TypeCode:
		sb.WriteString(fmt.Sprintf("```%s\n%s\n```\n", scrap.Code.Language, scrap.Code.Code))
	}

	return sb.String()
}
