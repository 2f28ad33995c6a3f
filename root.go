package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jstokke/wireguard-doctor/internal/diagnose"
)

var (
	flagVerbose        bool
	flagNoColor        bool
	flagNonInteractive bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wg-doctor <config-file>",
		Short: "Diagnose WireGuard connectivity issues",
		Long: "WG-Doctor inspects a WireGuard configuration, queries live tunnel state,\n" +
			"and walks you through fixing whatever is keeping traffic from flowing.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnosis(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging of engine activity")
	cmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&flagNonInteractive, "non-interactive", false, "answer prompts with their defaults instead of asking")
	return cmd
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Println("\nExiting.")
		return 0
	}
	if err != nil {
		fmt.Printf("%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
		return 1
	}
	return 0
}

func runDiagnosis(ctx context.Context, confPath string) error {
	if flagNoColor {
		color.NoColor = true
	}
	if !flagNonInteractive {
		if err := maybeElevate(); err != nil {
			return err
		}
	}

	log, err := newLogger(flagVerbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ui := newTerminalPresenter(ctx, os.Stdout, !flagNonInteractive)
	ui.Welcome()

	doc := diagnose.New(confPath, newExecRunner(log), ui, log)
	if err := doc.Run(ctx); err != nil {
		return err
	}

	ui.Complete()
	return nil
}
