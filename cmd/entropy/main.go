// Package main provides the entropy command line tool for inspecting derived
// names and managing unique slug reservations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ekaya-inc/entropy/pkg/config"
)

// Version is set at build time via ldflags
var Version = "dev"

var globalConfigPath string

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "entropy",
		Short:         "Naming conventions for content types: display names, plurals, slugs and template paths",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalConfigPath, "config", "c", config.DefaultPath, "Path to config.yaml")

	rootCmd.AddCommand(
		newNamesCmd(),
		newTruncateCmd(),
		newSlugCmd(),
		newMigrateCmd(),
	)

	return rootCmd
}
