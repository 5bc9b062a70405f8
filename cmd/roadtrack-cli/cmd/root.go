package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"roadtrack/internal/application"
	"roadtrack/internal/bootstrap"
	"roadtrack/internal/config"
)

var (
	overrides bootstrap.Overrides
	rt        *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "roadtrack-cli",
	Short: "CLI for tracking progress through a learning roadmap",
	Long: `roadtrack-cli is a command-line interface for tracking progress
through a roadmap of topics.

It imports roadmaps from JSON or YAML, records a status, note and
deadline per topic, and exports the progress as a JSON document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		rt, err = bootstrap.Start(cmd.Context(), overrides)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	closeRuntime()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", application.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&overrides.Home, "home", "", "data directory (default $"+config.EnvHome+" or "+config.DefaultHome+")")
	rootCmd.PersistentFlags().StringVar(&overrides.Backend, "backend", "", "storage backend: sqlite, sqlite3, file or memory")
	rootCmd.PersistentFlags().BoolVarP(&overrides.Verbose, "verbose", "v", false, "debug logging on stderr")
}

// GetState returns the loaded application state
func GetState() *application.State {
	return rt.State
}

// GetConfig returns the resolved configuration
func GetConfig() config.Config {
	return rt.Config
}

func closeRuntime() error {
	if rt == nil {
		return nil
	}
	err := rt.Close()
	rt = nil
	return err
}
