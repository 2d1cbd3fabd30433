package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/seedscan"
	"github.com/hupe1980/seedscan/codec"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		deck, stake string
		antes, shop int
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "analyze SEED...",
		Short: "Print the generated events of seeds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range args {
				rep, err := seedscan.Analyze(s,
					seedscan.WithDeck(deck),
					seedscan.WithStake(stake),
					seedscan.WithAntes(antes),
					seedscan.WithShopSlots(shop),
				)
				if err != nil {
					return err
				}
				if asJSON {
					b, err := codec.Default.Marshal(rep)
					if err != nil {
						return err
					}
					b = append(b, '\n')
					if _, err := cmd.OutOrStdout().Write(b); err != nil {
						return err
					}
					continue
				}
				if _, err := rep.WriteTo(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&deck, "deck", "", "deck (default Red)")
	fs.StringVar(&stake, "stake", "", "stake (default White)")
	fs.IntVar(&antes, "antes", seedscan.DefaultAnalyzeAntes, "antes to replay")
	fs.IntVar(&shop, "shop", seedscan.DefaultShopSlots, "shop items per ante")
	fs.BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
