package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/magefree/commander-engine-go/internal/catalog"
	"github.com/magefree/commander-engine-go/internal/game/cards"
)

func newCardsCmd(a *app) *cobra.Command {
	var commandersOnly bool
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List the catalog with the abilities the engine understood",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Load(cmd.Context(), a.cfg.Catalog, a.logger)
			if err != nil {
				return err
			}
			list := c.Cards()
			if commandersOnly {
				list = c.Commanders()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "NAME\tCOST\tTYPE\tSTATS\tABILITIES\n")
			for _, card := range list {
				stats := ""
				if card.IsCreature() {
					stats = fmt.Sprintf("%d/%d", card.BasePower(), card.BaseToughness())
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					card.Name, card.Cost.String(), card.TypeLine(), stats, abilities(card))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&commandersOnly, "commanders", false, "only list cards that can lead a deck")
	return cmd
}

func abilities(card *cards.Card) string {
	var parts []string
	for _, k := range card.Keywords {
		parts = append(parts, string(k))
	}
	for _, e := range card.SpellEffects {
		parts = append(parts, e.Describe())
	}
	for _, t := range card.Triggers {
		parts = append(parts, t.Describe())
	}
	return strings.Join(parts, "; ")
}
