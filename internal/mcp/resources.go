// ABOUTME: MCP resources exposing scraps as readable documents.
// ABOUTME: Allows AI agents to access scrap content via URI scheme.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// One resource template for dynamic scrap access; the SDK handles
	// listing based on the template.
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: "scraps://scrap/{id}",
			Name:        "Scrap",
			Description: "Access individual scraps by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// Parse URI: scraps://scrap/{id}
	var idStr string
	if _, err := fmt.Sscanf(req.Params.URI, "scraps://scrap/%s", &idStr); err != nil {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	scrap, err := s.findScrap(ctx, idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get scrap: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     scrapMarkdown(scrap),
			},
		},
	}, nil
}
