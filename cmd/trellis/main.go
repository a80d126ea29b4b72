package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/agiangrant/trellis"
	"github.com/agiangrant/trellis/retained"
)

const version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "trellis",
		Short: "Inspect retained widget trees without a window",
		Long: `trellis builds a widget tree from a TOML description, runs it through
the rewrite and render passes headlessly, and prints what came out.`,
		Example: `  # Print the laid-out tree, scene hash and accessibility tree
  trellis render ui.toml --access

  # Press Tab five times and print the focus after each press
  trellis tab ui.toml -n 5

  # Write a default trellis.toml
  trellis init`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.Verbose {
				handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				retained.SetLogger(slog.New(handler))
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to trellis.toml (searched upwards from the working directory by default)")
	rootCmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "Log pass activity to stderr")
	rootCmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "Disable styled output")

	rootCmd.AddCommand(renderCmd(&flags))
	rootCmd.AddCommand(tabCmd(&flags))
	rootCmd.AddCommand(initCmd())
	return rootCmd
}

// loadConfig loads the --config file, or the nearest trellis.toml, or the
// defaults when neither exists.
func (f *globalFlags) loadConfig() (trellis.Config, error) {
	path := f.ConfigPath
	if path == "" {
		found, err := trellis.FindConfig(".")
		if err != nil {
			return trellis.DefaultConfig(), nil
		}
		path = found
	}
	return trellis.LoadConfig(path)
}
