package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSlugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slug",
		Short: "Manage unique slug reservations in PostgreSQL",
	}

	cmd.AddCommand(
		newSlugReserveCmd(),
		newSlugReleaseCmd(),
		newSlugListCmd(),
	)

	return cmd
}

func newSlugReserveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <scope> <text>...",
		Short: "Reserve a unique slug for text within scope",
		Long: `Slugifies the text and reserves the first free slug in the scope,
appending -1, -2, ... when the plain slug is already taken.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDB(ctx, func(d *dbDeps) error {
				res, err := d.Allocator.Allocate(ctx, args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Slug)
				return err
			})
		},
	}
}

func newSlugReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <scope> <slug>",
		Short: "Release a reserved slug",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDB(ctx, func(d *dbDeps) error {
				if err := d.Allocator.Release(ctx, args[0], args[1]); err != nil {
					return fmt.Errorf("releasing %q: %w", args[1], err)
				}
				return nil
			})
		},
	}
}

func newSlugListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <scope>",
		Short: "List slugs reserved in scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDB(ctx, func(d *dbDeps) error {
				reservations, err := d.Slugs.GetByScope(ctx, args[0])
				if err != nil {
					return err
				}
				if len(reservations) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "No slugs reserved.")
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SLUG\tBASE\tRESERVED AT")
				for _, r := range reservations {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Slug, r.Base, r.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return tw.Flush()
			})
		},
	}
}
