// Package mcp exposes the deckhand editor as a Model Context Protocol
// server over stdio or SSE.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/arlevan/deckhand"
	"github.com/arlevan/deckhand/internal/adapters/httpapi"
	"github.com/arlevan/deckhand/internal/observability"
)

// Server wraps an editor session and exposes it as an MCP Server.
//
// The session is created lazily by the create/open tools; the mutex
// serializes tool calls so the session only ever sees one writer, which
// is the concurrency model the editing core assumes.
type Server struct {
	mu        sync.Mutex
	session   *deckhand.Session
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(logger *slog.Logger) *Server {
	s := &Server{
		logger:    logger,
		mcpServer: server.NewMCPServer("deckhand", deckhand.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, with the
// health and metrics endpoints mounted alongside.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	r.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	httpapi.Mount(r)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// wrap serializes a tool handler, records its outcome metric and logs
// failures. Handlers never return a transport-level error: every
// failure is an envelope.
func (s *Server) wrap(name string, fn func(args map[string]any) Envelope) func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (Envelope, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (Envelope, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		env := fn(args)
		status := "success"
		if !env.Success {
			status = "error"
			s.logger.Warn("tool failed", "tool", name, "code", env.Error, "error", env.Message)
		}
		observability.ToolCalls.WithLabelValues(name, status).Inc()
		return env, nil
	}
}

// requireSession guards tools that need an open document.
func (s *Server) requireSession() (*deckhand.Session, *Envelope) {
	if s.session == nil {
		env := failCode("DocumentNotOpen", "no presentation is open; call create_presentation or open_presentation first")
		return nil, &env
	}
	return s.session, nil
}

// decodeArgs binds a tool's argument map onto a typed request struct.
// Weak typing tolerates the JSON number/string looseness of callers.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}
