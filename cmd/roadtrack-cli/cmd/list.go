package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roadtrack/internal/application"
	"roadtrack/internal/application/commands"
	"roadtrack/internal/domain"
)

var (
	listStatus string
	listAll    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the topics of the current roadmap",
	Long: `List the topics of the current roadmap with their progress.

Examples:
  roadtrack-cli list
  roadtrack-cli list --status in-progress
  roadtrack-cli list --all    # also show records of removed topics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter domain.Status
		if listStatus != "" {
			status, err := application.ParseStatus(listStatus)
			if err != nil {
				return err
			}
			filter = status
		}

		state := GetState()
		topics, err := commands.NewListTopicsCommand(state).Execute(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, t := range topics {
			if filter != "" && t.Progress.Status != filter {
				continue
			}
			printTopicLine(w, t)
		}

		if !listAll {
			return nil
		}
		orphans := state.Orphans()
		if len(orphans) == 0 {
			return nil
		}
		fmt.Fprintln(w, "\nRecords without a topic:")
		for _, id := range orphans {
			rec := state.Record(id)
			if filter != "" && rec.Status != filter {
				continue
			}
			printTopicLine(w, commands.TopicView{Topic: domain.Topic{ID: id}, Progress: rec})
		}
		return nil
	},
}

var topicCmd = &cobra.Command{
	Use:   "topic <id>",
	Short: "Show one topic with its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, err := commands.NewGetTopicCommand(GetState(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printTopic(cmd.OutOrStdout(), *topic)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(topicCmd)
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only topics with this status")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include progress records of topics not in the roadmap")
}
