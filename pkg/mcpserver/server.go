// Package mcpserver exposes the language registry and title helpers as MCP
// (Model Context Protocol) tools, so editor agents can classify and clean up
// wiki titles.
//
// Quick Start:
//
//	server := mcpserver.New("1.0.0")
//	server.RunStdio(ctx)
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "archtranslator"

// Server wraps an MCP server with the translation tools registered.
type Server struct {
	mcpServer *mcp.Server
	logger    *slog.Logger
}

// New creates a server reporting the given version.
func New(version string) *Server {
	logger := slog.Default()
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcpServer.AddReceivingMiddleware(loggingMiddleware(logger))
	registerTools(mcpServer)

	return &Server{mcpServer: mcpServer, logger: logger}
}

// RunStdio serves over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("starting MCP server (stdio)", "name", serverName)
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// loggingMiddleware logs every incoming request and failed results.
func loggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			logger.Debug("mcp request", "method", method)
			result, err := next(ctx, method, req)
			if err != nil {
				logger.Error("mcp error", "method", method, "error", err)
			}
			return result, err
		}
	}
}
