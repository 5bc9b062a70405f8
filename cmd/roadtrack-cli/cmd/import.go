package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roadtrack/internal/adapters/filesystem"
	"roadtrack/internal/application/commands"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a roadmap from a JSON or YAML file",
	Long: `Import a roadmap and make it the current one.

Files ending in .yaml or .yml are read as YAML, everything else as
JSON. Use - to read JSON from stdin. Progress already recorded for
the roadmap's topics is kept.

Examples:
  roadtrack-cli import go-roadmap.json
  roadtrack-cli import backend.yaml
  cat roadmap.json | roadtrack-cli import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := filesystem.NewDocumentReaderFrom(cmd.InOrStdin())
		importCmd := commands.NewImportRoadmapCommand(GetState(), reader, args[0])
		result, err := importCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
