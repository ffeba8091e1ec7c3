package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nisaacdz/blockify/pkg/blockcrypto"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an Ed25519 key pair and print it to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := blockcrypto.GenerateKeyPair()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "public:  %s\n", kp.Public.PublicHex())
			fmt.Fprintf(cmd.OutOrStdout(), "private: %s\n", kp.PrivateHex())
			return nil
		},
	}
}
