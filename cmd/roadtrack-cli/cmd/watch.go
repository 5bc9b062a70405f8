package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roadtrack/internal/adapters/filesystem"
	"roadtrack/internal/application"
	"roadtrack/internal/application/commands"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-import a roadmap file whenever it changes",
	Long: `Import a roadmap file, then import it again every time it is
saved. Invalid versions are reported and skipped. Stop with Ctrl+C.

Examples:
  roadtrack-cli watch roadmap.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		w := cmd.OutOrStdout()
		reader := filesystem.NewDocumentReader()

		importFile := func(ctx context.Context) error {
			result, err := commands.NewImportRoadmapCommand(GetState(), reader, path).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, result.Message)
			return nil
		}
		reimport := func(ctx context.Context) error {
			err := importFile(ctx)
			if err != nil {
				fmt.Fprintln(w, application.UserMessage(err))
			}
			return err
		}

		if err := importFile(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(w, "Watching %s\n", path)

		logger := zap.NewNop()
		if rt != nil {
			logger = rt.Logger
		}
		watcher := filesystem.NewFileWatcher(path, logger)
		return watcher.Run(cmd.Context(), reimport)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
