// ABOUTME: MCP server exposing the workout log to AI assistants.
// ABOUTME: Wraps the sync resolver and session behind stdio transport.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/HPsm01/FIT-AI-11-04/internal/api"
	"github.com/HPsm01/FIT-AI-11-04/internal/cache"
	"github.com/HPsm01/FIT-AI-11-04/internal/session"
	syncpkg "github.com/HPsm01/FIT-AI-11-04/internal/sync"
)

// Server wraps the MCP server with the sync core.
type Server struct {
	mcpServer *mcp.Server
	resolver  *syncpkg.Resolver
	sess      *session.Session
	store     *cache.Store
	client    *api.Client
}

// NewServer creates an MCP server over the given sync core.
func NewServer(resolver *syncpkg.Resolver, sess *session.Session, store *cache.Store, client *api.Client) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitai",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		resolver:  resolver,
		sess:      sess,
		store:     store,
		client:    client,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
