package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roadtrack/internal/application"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current roadmap and its completion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := GetState()
		roadmap := state.Roadmap()
		if roadmap == nil {
			return application.ErrNoRoadmap
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, roadmap.Title)
		if roadmap.Description != "" {
			fmt.Fprintln(w, roadmap.Description)
		}
		fmt.Fprintln(w)
		printSummary(w, state.Summary())
		if orphans := state.Orphans(); len(orphans) > 0 {
			fmt.Fprintf(w, "%d progress records belong to topics not in this roadmap\n", len(orphans))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
