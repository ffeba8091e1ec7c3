package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nisaacdz/blockify/internal/demo"
	"github.com/nisaacdz/blockify/pkg/chain"
)

func newScanCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Validate the chain's header linkage end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			length, err := c.Len(ctx)
			if err != nil {
				return err
			}
			if err := chain.Scan[demo.Note](ctx, c); err != nil {
				return fmt.Errorf("chain invalid: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d blocks validated\n", length)
			return nil
		},
	}
}
