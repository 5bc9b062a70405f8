package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"roadtrack/internal/adapters/browser"
	"roadtrack/internal/adapters/editor"
	"roadtrack/internal/adapters/filesystem"
	"roadtrack/internal/adapters/tui"
	"roadtrack/internal/bootstrap"
)

func main() {
	var o bootstrap.Overrides
	flag.StringVar(&o.Home, "home", "", "data directory (default $ROADTRACK_HOME or ~/.local/share/roadtrack)")
	flag.StringVar(&o.Backend, "backend", "", "storage backend: sqlite, sqlite3, file or memory")
	flag.StringVar(&o.ExportDir, "export-dir", "", "directory for exported progress files")
	flag.BoolVar(&o.Verbose, "verbose", false, "debug logging to the log file")
	flag.Parse()
	o.LogToFile = true

	ctx := context.Background()
	rt, err := bootstrap.Start(ctx, o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	// Initialize adapters
	reader := filesystem.NewDocumentReader()
	sink := filesystem.NewExportDir(rt.Config.ExportDir)
	editorOpener := editor.NewOpener(rt.Config.Editor)
	linkOpener := browser.NewOpener()

	app := tui.NewApp(ctx, rt.State, reader, sink, editorOpener, linkOpener, rt.Logger)

	// A path argument is imported on start
	if path := flag.Arg(0); path != "" {
		app.QueueImport(path)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		rt.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
