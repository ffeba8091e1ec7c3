package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-metrics",
		Short: "Serve this process's default Prometheus registry on metrics.listen",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			if !cfg.Metrics.Enable {
				logger.Info().Msg("metrics.enable is false, nothing to serve")
				return nil
			}

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())

			logger.Info().Str("addr", cfg.Metrics.Listen).Msg("serving metrics")
			return http.ListenAndServe(cfg.Metrics.Listen, mux)
		},
	}
}
