package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-ace/internal/debug"
)

const version = "0.1.0"

var (
	flagConfig  string
	flagVerbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "acetrace",
		Short: "Trace node tree scenarios frame by frame",
		Long: `acetrace plays YAML scenarios against the node tree runtime.

Each scenario builds a tree, mutates it inside or outside implicit animation
scopes and flushes frames on a manual clock. The trace shows the tree, the
frame mutations of every node and the geometry transitions after each frame.`,
		PersistentPreRunE: initializeGlobals,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to a pipeline config file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log transition decisions to stderr")

	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// initializeGlobals sets up logging from the global flags.
func initializeGlobals(cmd *cobra.Command, _ []string) error {
	debug.SetOutput(cmd.ErrOrStderr())
	if flagVerbose {
		debug.SetLevel(log.DebugLevel)
	}
	return nil
}
