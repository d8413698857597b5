// ABOUTME: MCP server initialization and configuration for diary.
// ABOUTME: Sets up server with diary tools for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server around a restored diary session.
type Server struct {
	mcp     *gomcp.Server
	session *storage.Session
}

// NewServer creates an MCP server with diary capabilities.
func NewServer(session *storage.Session) (*Server, error) {
	if session == nil {
		return nil, fmt.Errorf("diary session is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "diary",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		session: session,
	}

	s.registerDiaryTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
