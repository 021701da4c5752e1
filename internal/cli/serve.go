package cli

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/solagent-io/solagent/internal/chain"
	"github.com/solagent-io/solagent/internal/config"
	"github.com/solagent-io/solagent/internal/logger"
	"github.com/solagent-io/solagent/internal/mcpserver"
	"github.com/solagent-io/solagent/internal/metrics"
	"github.com/solagent-io/solagent/pkg/agent"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP requests on stdin/stdout",
	Long: `Serve handles Model Context Protocol requests on stdin/stdout until the
client disconnects. Configuration comes from the optional --config file and
SOLAGENT_* environment variables.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lg, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: true,
	})
	if err != nil {
		return err
	}
	defer lg.Close()

	m := metrics.NewMetrics()
	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, m)
	}

	registry := agent.NewRegistry()
	reader := chain.NewClient(cfg.Endpoint(), cfg.RPCTimeout())

	srv, err := mcpserver.New(registry, reader, chain.Network(cfg.Network), m, version)
	if err != nil {
		return err
	}

	log.Info().
		Str("network", cfg.Network).
		Str("endpoint", cfg.Endpoint()).
		Msg("Serving MCP on stdio")

	return srv.Serve()
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("Metrics listener started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("Metrics listener stopped")
	}
}
