package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"popcorn/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var filter logs.Filter

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the popcorn log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.MinLevel != "" && !logs.ValidLevel(filter.MinLevel) {
				return fmt.Errorf("unknown log level %q (use debug, info, warn, or error)", filter.MinLevel)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.LogDir(), "popcorn.log")

			out := cmd.OutOrStdout()
			emit := func(line string) {
				if filter.Match(line) {
					fmt.Fprintln(out, line)
				}
			}

			snap, err := logs.Last(path, lines)
			if err != nil {
				return err
			}
			for _, line := range snap.Lines {
				emit(line)
			}
			if !follow {
				return nil
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err = logs.Follow(signalCtx, path, snap.Offset, 500*time.Millisecond, emit)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&filter.MinLevel, "level", "", "Only show lines at or above this level")
	cmd.Flags().StringVar(&filter.Component, "component", "", "Only show lines from this component")
	return cmd
}
