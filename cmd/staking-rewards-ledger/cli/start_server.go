package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/api"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/queue"
)

const shutdownTimeout = 15 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking rewards ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	qm, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	if err := qm.Start(); err != nil {
		return fmt.Errorf("failed to start event publisher: %w", err)
	}
	defer func() {
		if err := qm.Stop(); err != nil {
			log.Error().Err(err).Msg("error while stopping event publisher")
		}
	}()

	service, dbClient, err := openService(ctx, cfg, qm)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error while disconnecting db client")
		}
	}()

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartLedgerSync(ctx)

	server := api.New(cfg, service)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
