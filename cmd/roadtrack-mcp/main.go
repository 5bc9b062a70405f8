package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"roadtrack/internal/adapters/filesystem"
	mcpadapter "roadtrack/internal/adapters/mcp"
	"roadtrack/internal/bootstrap"
)

func main() {
	var o bootstrap.Overrides
	flag.StringVar(&o.Home, "home", "", "data directory (default $ROADTRACK_HOME or ~/.local/share/roadtrack)")
	flag.StringVar(&o.Backend, "backend", "", "storage backend: sqlite, sqlite3, file or memory")
	flag.StringVar(&o.ExportDir, "export-dir", "", "directory for exported progress files")
	flag.BoolVar(&o.Verbose, "verbose", false, "debug logging to the log file")
	flag.Parse()
	// stdout carries the protocol
	o.LogToFile = true

	rt, err := bootstrap.Start(context.Background(), o)
	if err != nil {
		log.Fatalf("roadtrack-mcp: %v", err)
	}
	defer rt.Close()

	mcpServer := server.NewMCPServer(
		"roadtrack-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	reader := filesystem.NewDocumentReader()
	sink := filesystem.NewExportDir(rt.Config.ExportDir)

	mcpadapter.RegisterReadTools(mcpServer, rt.State)
	mcpadapter.RegisterWriteTools(mcpServer, rt.State, reader, sink)

	rt.Logger.Info("serving on stdio", zap.String("home", rt.Config.Home))
	if err := server.ServeStdio(mcpServer); err != nil {
		rt.Close()
		log.Fatalf("roadtrack-mcp: %v", err)
	}
}
