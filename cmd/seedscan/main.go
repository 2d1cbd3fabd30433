// Command seedscan searches seeds from the command line.
//
//	seedscan search --must 'Voucher:Telescope@1' --should 'Tag:Negative Tag@1-4#2' -o hits.csv
//	seedscan search --query query.json --random 1000000 --format jsonl --compress zstd
//	seedscan analyze ALEEB --antes 3
//	seedscan platform
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seedscan",
		Short:         "Search run seeds matching a query",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCmd(), newAnalyzeCmd(), newPlatformCmd())
	return root
}
