package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/magefree/commander-engine-go/internal/catalog"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "import <cards.csv>",
		Short:   "Import cards from a CSV export into the catalog store",
		Example: `  simulator import cards.csv --catalog-driver sqlite --catalog-dsn cards.db`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := catalog.OpenStore(ctx, a.cfg.Catalog)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("the builtin catalog is read-only; pick --catalog-driver sqlite or postgres")
			}
			defer store.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			parser, err := catalog.NewOracleParser()
			if err != nil {
				return err
			}
			stats, err := catalog.NewImporter(store, parser, a.logger).Import(ctx, f)
			if err != nil {
				return err
			}
			total, err := store.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "read %d, skipped %d, saved %d (%d cards in store)\n",
				stats.Read, stats.Skipped, stats.Saved, total)
			return nil
		},
	}
}
