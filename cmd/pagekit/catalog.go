package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

func newCatalogCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the section types a page can contain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := domain.NewSectionCatalog()
			if err != nil {
				return err
			}
			defs := catalog.Definitions()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(defs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tLABEL\tPERSONALIZABLE")
			for _, def := range defs {
				personalizable := strings.Join(def.PersonalizableKeys, ",")
				if personalizable == "" {
					personalizable = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Type, def.Label, personalizable)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print full definitions with default content and style")
	return cmd
}
