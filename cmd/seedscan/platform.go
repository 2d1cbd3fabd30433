package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/seedscan"
)

func newPlatformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the detected vector unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := seedscan.Platform()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\navailable: %s\n", p, strings.Join(p.Available, ", "))
			return err
		},
	}
}
