package main

import (
	"fmt"

	"github.com/Veraticus/the-profit-must-flow/internal/config"
	"github.com/Veraticus/the-profit-must-flow/internal/metrics"
	"github.com/Veraticus/the-profit-must-flow/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the CSV upload form",
		Long: `Start the web form. Upload a brokerage export to see the parsed rows and the
calculated profit. A JSON endpoint is available at POST /api/calculate.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().Int64("max-upload-bytes", config.DefaultMaxUploadBytes, "maximum accepted upload size")
	cmd.Flags().Bool("metrics", true, "expose Prometheus metrics at /metrics")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.max_upload_bytes", cmd.Flags().Lookup("max-upload-bytes"))
	_ = viper.BindPFlag("server.metrics_enabled", cmd.Flags().Lookup("metrics"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig(viper.GetViper())
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	var recorder metrics.Recorder = metrics.Noop{}
	if cfg.MetricsEnabled {
		recorder = metrics.NewPrometheus()
	}

	server, err := web.NewServer(*cfg, recorder)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return server.Run(cmd.Context())
}
