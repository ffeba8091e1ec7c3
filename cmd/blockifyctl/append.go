package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nisaacdz/blockify/internal/config"
	"github.com/nisaacdz/blockify/internal/demo"
	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/record"
)

func newAppendCmd(configPath *string) *cobra.Command {
	var (
		body       string
		privateHex string
	)
	cmd := &cobra.Command{
		Use:   "append",
		Short: "Sign a demo note and append it as a new block",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			kp, err := resolveKeyPair(cfg, privateHex)
			if err != nil {
				return err
			}

			rec, err := record.New(demo.NewNote(body), kp, record.NewMetadata().Set("source", "blockifyctl"))
			if err != nil {
				return fmt.Errorf("sign record: %w", err)
			}

			ctx := cmd.Context()
			c, err := openChain(ctx, cfg, logger, prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			defer c.Close()

			u := block.NewBuilder[demo.Note](nil, 0)
			u.Push(rec)

			descriptor, err := c.Append(ctx, u)
			if err != nil {
				return fmt.Errorf("append block: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "appended block %d, hash %s\n", descriptor.Position, descriptor.Hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "note body to sign and append")
	cmd.Flags().StringVar(&privateHex, "private-key", "", "hex-encoded private key (overrides config's keys.privateKeyPath)")
	cmd.MarkFlagRequired("body")
	return cmd
}

func resolveKeyPair(cfg *config.Config, privateHex string) (blockcrypto.KeyPair, error) {
	if privateHex != "" {
		return blockcrypto.KeyPairFromPrivateHex(privateHex)
	}
	if cfg.Keys.PrivateKeyPath == "" {
		return blockcrypto.KeyPair{}, fmt.Errorf("blockifyctl: no --private-key given and keys.privateKeyPath is unset")
	}
	return loadKeyPairFromFile(cfg.Keys.PrivateKeyPath)
}
