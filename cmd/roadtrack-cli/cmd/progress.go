package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"roadtrack/internal/application/commands"
)

var (
	noteClear     bool
	deadlineClear bool
)

var statusCmd = &cobra.Command{
	Use:   "status <id> <not-started|in-progress|completed>",
	Short: "Set the status of a topic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		statusCmd := commands.NewSetStatusCommand(GetState(), args[0], args[1])
		result, err := statusCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note <id> [text|-]",
	Short: "Set or delete the note of a topic",
	Long: `Replace the note of a topic.

Examples:
  roadtrack-cli note t1 "Read the tour twice"
  roadtrack-cli note t1 - < notes.md
  roadtrack-cli note t1 --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var note string
		switch {
		case noteClear:
		case len(args) < 2:
			return errors.New("note text required, use --clear to delete the note")
		case args[1] == "-":
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read note: %w", err)
			}
			note = strings.TrimRight(string(data), "\n")
		default:
			note = args[1]
		}

		noteCmd := commands.NewSetNoteCommand(GetState(), args[0], note)
		result, err := noteCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var deadlineCmd = &cobra.Command{
	Use:   "deadline <id> [date]",
	Short: "Set or clear the deadline of a topic",
	Long: `Set the deadline of a topic. Dates are stored as given;
YYYY-MM-DD is recommended.

Examples:
  roadtrack-cli deadline t1 2026-12-31
  roadtrack-cli deadline t1 --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var deadline string
		switch {
		case deadlineClear:
		case len(args) < 2:
			return errors.New("date required, use --clear to remove the deadline")
		default:
			deadline = args[1]
		}

		deadlineCmd := commands.NewSetDeadlineCommand(GetState(), args[0], deadline)
		result, err := deadlineCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(deadlineCmd)
	noteCmd.Flags().BoolVar(&noteClear, "clear", false, "delete the note")
	deadlineCmd.Flags().BoolVar(&deadlineClear, "clear", false, "remove the deadline")
}
