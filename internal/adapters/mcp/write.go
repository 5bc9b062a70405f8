package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"roadtrack/internal/application"
	"roadtrack/internal/application/commands"
	"roadtrack/internal/ports"
)

// RegisterWriteTools adds all tools that change the roadmap or progress.
func RegisterWriteTools(s *server.MCPServer, state *application.State, reader ports.DocumentReader, sink ports.ExportSink) {
	s.AddTool(importTool(), importHandler(state, reader))
	s.AddTool(exportTool(), exportHandler(state, sink))
	s.AddTool(setStatusTool(), setStatusHandler(state))
	s.AddTool(setNoteTool(), setNoteHandler(state))
	s.AddTool(setDeadlineTool(), setDeadlineHandler(state))
	s.AddTool(resetTool(), resetHandler(state))
}

// --- import_roadmap ---

func importTool() mcp.Tool {
	return mcp.NewTool("import_roadmap",
		mcp.WithDescription("Load a roadmap document. Pass either a file path or the document itself. Progress stored for its topics is kept."),
		mcp.WithString("path",
			mcp.Description("Path to a .json, .yaml or .yml roadmap file"),
		),
		mcp.WithString("content",
			mcp.Description("Roadmap document text, used when path is omitted"),
		),
		mcp.WithString("format",
			mcp.Description("Format of content"),
			mcp.Enum(string(ports.FormatJSON), string(ports.FormatYAML)),
			mcp.DefaultString(string(ports.FormatJSON)),
		),
	)
}

func importHandler(state *application.State, reader ports.DocumentReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		content := req.GetString("content", "")

		var cmd *commands.ImportRoadmapCommand
		switch {
		case path != "":
			cmd = commands.NewImportRoadmapCommand(state, reader, path)
		case content != "":
			cmd = commands.NewImportDocumentCommand(state, &ports.Document{
				Name:   "content",
				Data:   []byte(content),
				Format: ports.DocumentFormat(req.GetString("format", string(ports.FormatJSON))),
			})
		default:
			return toolError(&application.ValidationError{Field: "path", Message: "path or content is required"})
		}

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- export_progress ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_progress",
		mcp.WithDescription("Export the roadmap with all progress as JSON. Returns the document; with save=true also writes roadmap-progress-<millis>.json to the export directory."),
		mcp.WithBoolean("save",
			mcp.Description("Write the export file as well"),
		),
	)
}

func exportHandler(state *application.State, sink ports.ExportSink) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var target ports.ExportSink
		if req.GetBool("save", false) {
			target = sink
		}

		result, err := commands.NewExportProgressCommand(state, target).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if result.Location != "" {
			return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", result.Message, result.Data)), nil
		}
		return mcp.NewToolResultText(string(result.Data)), nil
	}
}

// --- set_status ---

func setStatusTool() mcp.Tool {
	return mcp.NewTool("set_status",
		mcp.WithDescription("Change the status of a topic."),
		mcp.WithString("topic_id",
			mcp.Description("ID of the topic"),
			mcp.Required(),
		),
		mcp.WithString("status",
			mcp.Description("New status"),
			mcp.Required(),
			mcp.Enum("not-started", "in-progress", "completed"),
		),
	)
}

func setStatusHandler(state *application.State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetStatusCommand(state,
			req.GetString("topic_id", ""),
			req.GetString("status", ""))
		return progressResult(cmd.Execute(ctx))
	}
}

// --- set_note ---

func setNoteTool() mcp.Tool {
	return mcp.NewTool("set_note",
		mcp.WithDescription("Replace the note of a topic. An empty note deletes it."),
		mcp.WithString("topic_id",
			mcp.Description("ID of the topic"),
			mcp.Required(),
		),
		mcp.WithString("note",
			mcp.Description("Note text; empty to delete"),
		),
	)
}

func setNoteHandler(state *application.State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetNoteCommand(state,
			req.GetString("topic_id", ""),
			req.GetString("note", ""))
		return progressResult(cmd.Execute(ctx))
	}
}

// --- set_deadline ---

func setDeadlineTool() mcp.Tool {
	return mcp.NewTool("set_deadline",
		mcp.WithDescription("Set or clear the deadline of a topic."),
		mcp.WithString("topic_id",
			mcp.Description("ID of the topic"),
			mcp.Required(),
		),
		mcp.WithString("deadline",
			mcp.Description("Date as YYYY-MM-DD; empty to clear"),
		),
	)
}

func setDeadlineHandler(state *application.State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetDeadlineCommand(state,
			req.GetString("topic_id", ""),
			req.GetString("deadline", ""))
		return progressResult(cmd.Execute(ctx))
	}
}

// --- reset ---

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Forget the loaded roadmap and ALL progress records. Cannot be undone."),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true"),
			mcp.Required(),
		),
	)
}

func resetHandler(state *application.State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !req.GetBool("confirm", false) {
			return toolError(&application.ValidationError{Field: "confirm", Message: "set confirm to true to reset"})
		}

		message, err := commands.NewResetCommand(state).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(message), nil
	}
}

func progressResult(result *commands.ProgressResult, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}
