package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arlevan/deckhand/internal/adapters/mcp"
	"github.com/arlevan/deckhand/internal/config"
	"github.com/arlevan/deckhand/internal/logging"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the deckhand editor as an MCP Server.
This lets AI agents (like Claude Desktop) create and edit presentations
through the tool surface.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("transport") {
			cfg.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))
		slog.SetDefault(logger)

		srv := mcp.NewServer(logger)

		switch cfg.Transport {
		case "stdio":
			// Keep the JSON-RPC stream on Stdout clean
			log.SetOutput(os.Stderr)
			logger.Info("starting deckhand MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				return err
			}
		case "sse":
			logger.Info("starting deckhand MCP server (SSE)", "port", cfg.Port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
		default:
			return errors.New("unknown transport " + cfg.Transport + " (supported: stdio, sse)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	mcpCmd.Flags().String("config", "", "Path to a YAML config file")
}
