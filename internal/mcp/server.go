// ABOUTME: MCP server for scraps integration with AI agents.
// ABOUTME: Provides tools and resources for board management.

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/scraps/internal/board"
	"github.com/harper/scraps/internal/store"
)

type Server struct {
	server *mcp.Server
	board  *board.Board
	store  store.Store
	userID string
}

func NewServer(b *board.Board, st store.Store, userID string) *Server {
	s := &Server{board: b, store: st, userID: userID}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "scraps",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		},
	)

	s.registerTools()
	s.registerResources()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
