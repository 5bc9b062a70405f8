package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roadtrack/internal/adapters/filesystem"
	"roadtrack/internal/application/commands"
	"roadtrack/internal/ports"
)

var (
	exportOutput string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roadmap with its progress",
	Long: `Export the current roadmap together with every progress record.

The document is written to roadmap-progress-<millis>.json in the
export directory, or printed when --stdout is given.

Examples:
  roadtrack-cli export
  roadtrack-cli export -o ~/backups
  roadtrack-cli export --stdout > progress.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		toStdout := exportStdout || exportOutput == filesystem.StdinPath

		var sink ports.ExportSink
		if !toStdout {
			dir := exportOutput
			if dir == "" {
				dir = GetConfig().ExportDir
			}
			sink = filesystem.NewExportDir(dir)
		}

		exportCmd := commands.NewExportProgressCommand(GetState(), sink)
		result, err := exportCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if toStdout {
			fmt.Fprintln(cmd.OutOrStdout(), string(result.Data))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "directory to write the export to (- for stdout)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "print the export instead of writing a file")
}
