package main

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newInspectCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <position>",
		Short: "Print a sealed block's header and record count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("blockifyctl: invalid position %q: %w", args[0], err)
			}

			cfg, logger, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c, err := openChain(ctx, cfg, logger, prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			defer c.Close()

			b, err := c.BlockAt(ctx, position)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "position:    %d\n", b.Position())
			fmt.Fprintf(out, "hash:        %s\n", b.Hash())
			fmt.Fprintf(out, "prev_hash:   %s\n", b.PrevHash())
			fmt.Fprintf(out, "merkle_root: %s\n", b.MerkleRoot())
			fmt.Fprintf(out, "nonce:       %d\n", b.Nonce())
			fmt.Fprintf(out, "timestamp:   %d\n", b.Timestamp())
			fmt.Fprintf(out, "records:     %d\n", b.RecordCount())
			return nil
		},
	}
	return cmd
}
