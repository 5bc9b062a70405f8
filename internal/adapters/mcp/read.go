package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"roadtrack/internal/application"
	"roadtrack/internal/application/commands"
	"roadtrack/internal/domain"
)

// RegisterReadTools adds all read-only roadmap tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, state *application.State) {
	s.AddTool(getRoadmapTool(), getRoadmapHandler(state))
	s.AddTool(listTopicsTool(), listTopicsHandler(state))
	s.AddTool(getTopicTool(), getTopicHandler(state))
}

// --- get_roadmap ---

func getRoadmapTool() mcp.Tool {
	return mcp.NewTool("get_roadmap",
		mcp.WithDescription("Show the loaded roadmap: title, description and completion summary."),
	)
}

func getRoadmapHandler(state *application.State) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		roadmap := state.Roadmap()
		if roadmap == nil {
			return toolError(application.ErrNoRoadmap)
		}

		var sb strings.Builder
		sb.WriteString(roadmap.Title)
		sb.WriteByte('\n')
		if roadmap.Description != "" {
			sb.WriteString(roadmap.Description)
			sb.WriteByte('\n')
		}
		sb.WriteString(formatSummary(state.Summary()))
		if orphans := state.Orphans(); len(orphans) > 0 {
			fmt.Fprintf(&sb, "\n%d stored records belong to topics not in this roadmap", len(orphans))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_topics ---

func listTopicsTool() mcp.Tool {
	return mcp.NewTool("list_topics",
		mcp.WithDescription("List the roadmap's topics with status, deadline and a note preview."),
		mcp.WithString("status",
			mcp.Description("Only list topics with this status"),
			mcp.Enum(string(domain.StatusNotStarted), string(domain.StatusInProgress), string(domain.StatusCompleted)),
		),
	)
}

func listTopicsHandler(state *application.State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := req.GetString("status", "")
		if filter != "" {
			if _, err := application.ParseStatus(filter); err != nil {
				return toolError(err)
			}
		}

		topics, err := commands.NewListTopicsCommand(state).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var matched []commands.TopicView
		for _, t := range topics {
			if filter == "" || string(t.Progress.Status) == filter {
				matched = append(matched, t)
			}
		}
		return formatEntities(matched, formatTopicLine)
	}
}

// --- get_topic ---

func getTopicTool() mcp.Tool {
	return mcp.NewTool("get_topic",
		mcp.WithDescription("Show one topic in full: description, resources, status, deadline and note."),
		mcp.WithString("topic_id",
			mcp.Description("ID of the topic"),
			mcp.Required(),
		),
	)
}

func getTopicHandler(state *application.State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		topicID := req.GetString("topic_id", "")

		view, err := commands.NewGetTopicCommand(state, topicID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatTopic(*view)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(application.UserMessage(err)), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSummary(s domain.Summary) string {
	return fmt.Sprintf("%d%% complete: %d topics, %d completed, %d in progress, %d remaining",
		s.Percent, s.Total, s.Completed, s.InProgress, s.Remaining)
}

func formatTopicLine(t commands.TopicView) string {
	line := fmt.Sprintf("%s  [%s]  %s", t.Topic.ID, t.Progress.Status, t.Topic.Title)
	if t.Progress.HasDeadline() {
		line += "  due " + domain.FormatDeadline(t.Progress.DeadlineValue())
	}
	if t.Progress.Note != "" {
		line += "  note: " + preview(t.Progress.Note, 50)
	}
	return line
}

func formatTopic(t commands.TopicView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", t.Topic.Title, t.Topic.ID)
	if t.Topic.Description != "" {
		sb.WriteString(t.Topic.Description)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Status: %s\n", t.Progress.Status.Label())
	if t.Progress.HasDeadline() {
		fmt.Fprintf(&sb, "Deadline: %s (%s)\n", domain.FormatDeadline(t.Progress.DeadlineValue()), t.Progress.DeadlineValue())
	} else {
		sb.WriteString("Deadline: none\n")
	}
	if len(t.Topic.Resources) > 0 {
		sb.WriteString("Resources:\n")
		for _, r := range t.Topic.Resources {
			sb.WriteString("  - " + r + "\n")
		}
	}
	if t.Progress.Note != "" {
		sb.WriteString("Note:\n" + t.Progress.Note + "\n")
	}
	return sb.String()
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
