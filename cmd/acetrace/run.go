package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	ace "github.com/grindlemire/go-ace"
	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/scenario"
)

// maxParallel bounds the scenarios running at once.
const maxParallel = 8

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run scenarios and print their traces",
		Long: `Run each scenario on its own pipeline and print the traces in the
order the files were given. Scenarios run concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScenarios,
	}
}

func runScenarios(cmd *cobra.Command, args []string) error {
	var opts []ace.PipelineOption
	if flagConfig != "" {
		cfg, err := ace.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
		if err := cfg.ApplyLogging(); err != nil {
			return err
		}
		if flagVerbose {
			debug.SetLevel(log.DebugLevel)
		}
		opts = append(opts, ace.WithConfig(cfg))
	}

	results := make([]*scenario.Result, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxParallel)
	for i, path := range args {
		g.Go(func() error {
			s, err := scenario.Load(path)
			if err != nil {
				return err
			}
			runOpts := append([]ace.PipelineOption{ace.WithInstanceID(int32(i + 1))}, opts...)
			res, err := scenario.Run(ctx, s, runOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if res.Name == "" {
				res.Name = path
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if _, err := res.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	return nil
}
