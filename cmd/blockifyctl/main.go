// Command blockifyctl is a demo CLI around the blockify library: it
// generates key pairs, appends demo.Note records to a chain (in-memory
// or sqlite, per config), inspects sealed blocks and scans a chain's
// linkage end to end.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "blockifyctl",
		Short: "Inspect and drive a blockify chain from the command line",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "blockify.yaml", "path to blockifyctl's YAML config file")

	root.AddCommand(
		newKeygenCmd(),
		newAppendCmd(&configPath),
		newInspectCmd(&configPath),
		newScanCmd(&configPath),
		newServeCmd(&configPath),
	)
	return root
}
