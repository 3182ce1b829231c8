package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ekaya-inc/entropy/pkg/models"
	"github.com/ekaya-inc/entropy/pkg/naming"
)

func newNamesCmd() *cobra.Command {
	var (
		app     string
		display string
		plural  string
		slug    string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "names <identifier>...",
		Short: "Show derived names for identifiers",
		Long: `Derives the display name, plural name, slug and template path for each
identifier. Overrides from the configured overrides file are applied; the
--display, --plural and --slug flags apply to every identifier given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				reg := naming.NewRegistry(d.Resolver, d.Logger)
				var rows []namesRow
				for _, id := range args {
					names, err := reg.Resolve(models.Entity{
						Identifier:          id,
						App:                 app,
						DisplayNameOverride: display,
						PluralOverride:      plural,
						SlugOverride:        slug,
					})
					if err != nil {
						return err
					}
					rows = append(rows, namesRow{Identifier: id, Names: names})
				}
				if asJSON {
					return writeNamesJSON(cmd.OutOrStdout(), rows)
				}
				return writeNamesTable(cmd.OutOrStdout(), rows)
			})
		},
	}

	cmd.Flags().StringVarP(&app, "app", "a", "", "Application label for template paths")
	cmd.Flags().StringVar(&display, "display", "", "Display name override")
	cmd.Flags().StringVar(&plural, "plural", "", "Plural name override")
	cmd.Flags().StringVar(&slug, "slug", "", "Slug override (must already be a valid slug)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

type namesRow struct {
	Identifier string `json:"identifier"`
	models.Names
}

func writeNamesTable(w io.Writer, rows []namesRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IDENTIFIER\tDISPLAY NAME\tPLURAL\tSLUG\tTEMPLATE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Identifier, r.DisplayName, r.PluralName, r.Slug, r.TemplatePath)
	}
	return tw.Flush()
}

func writeNamesJSON(w io.Writer, rows []namesRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
