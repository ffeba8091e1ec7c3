package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nisaacdz/blockify/internal/config"
	"github.com/nisaacdz/blockify/internal/demo"
	"github.com/nisaacdz/blockify/internal/logging"
	"github.com/nisaacdz/blockify/internal/telemetry"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/chain"
	"github.com/nisaacdz/blockify/pkg/chain/sqlite"
)

// openChain builds the chain.Chain[demo.Note] named by cfg.Chain,
// wired with a logger and a metrics registerer, per cfg.Chain.Backend.
func openChain(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (chain.Chain[demo.Note], error) {
	metrics := telemetry.NewChainMetrics(reg, "blockifyctl")

	switch cfg.Chain.Backend {
	case "memory":
		return chain.NewMemory[demo.Note](demo.Codec{},
			chain.WithLogger[demo.Note](logger),
			chain.WithMetrics[demo.Note](metrics),
		), nil
	case "sqlite":
		return sqlite.NewChain[demo.Note](ctx, sqlite.DefaultConfig(cfg.Chain.Path), demo.Codec{},
			sqlite.WithLogger[demo.Note](logger),
			sqlite.WithMetrics[demo.Note](metrics),
		)
	default:
		return nil, fmt.Errorf("blockifyctl: unknown chain backend %q", cfg.Chain.Backend)
	}
}

func loadApp(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	logger := logging.New(cfg.LogLevel)
	return cfg, logger, nil
}

// loadKeyPairFromFile reads a hex-encoded private key written by
// "blockifyctl keygen > keyfile" (stdout has both lines; only the
// "private:" one is used here).
func loadKeyPairFromFile(path string) (blockcrypto.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return blockcrypto.KeyPair{}, fmt.Errorf("blockifyctl: read key file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if hex, ok := strings.CutPrefix(line, "private:"); ok {
			return blockcrypto.KeyPairFromPrivateHex(strings.TrimSpace(hex))
		}
	}
	return blockcrypto.KeyPairFromPrivateHex(strings.TrimSpace(string(data)))
}
