// Package app arma los casos de uso según la configuración (almacén, Redis, Kafka).
// Lo comparten cmd/api y cmd/restock.
package app

import (
	"context"
	"fmt"

	"github.com/jhoicas/reposicion-api/internal/application/analytics"
	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/cache"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/memory"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/reposicion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/reposicion-api/pkg/config"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

// Services casos de uso listos para usar. Close libera pool, Redis y writers de Kafka.
type Services struct {
	ReceivePurchase  *inventory.ReceivePurchaseUseCase
	AutoRestock      *inventory.AutoRestockUseCase
	SalesPerformance *analytics.SalesPerformanceUseCase

	closers []func() error
}

// Close cierra los recursos en orden inverso de apertura.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

// Build conecta los adaptadores según cfg. Redis y Kafka son opcionales.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	s := &Services{}

	var (
		txRunner  inventory.TxRunner
		salesRepo repository.SalesRepository
	)
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.New()
		if cfg.App.SeedFile == "" {
			log.Warn().Msg("almacén en memoria vacío: defina STORE_SEED_FILE para cargar datos")
		} else if err := memory.LoadSeedFile(store, cfg.App.SeedFile); err != nil {
			return nil, fmt.Errorf("seed del almacén en memoria: %w", err)
		}
		txRunner, salesRepo = store, store
		log.Warn().Str("seed", cfg.App.SeedFile).Msg("almacén en memoria: los cambios se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s.closers = append(s.closers, func() error { pool.Close(); return nil })
		txRunner = postgres.NewTxRunner(pool)
		salesRepo = postgres.NewSalesRepository(pool)
	}

	var (
		locker      inventory.RestockLocker = cache.NoopLocker{}
		reportCache analytics.ReportCache   = cache.NoopReportCache{}
	)
	if cfg.Redis.Enabled() {
		client := cache.NewClient(cfg.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			s.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		s.closers = append(s.closers, client.Close)
		locker = cache.NewRedisRestockLock(client, cfg.Redis.RestockLockTTL)
		reportCache = cache.NewRedisReportCache(client)
	}

	var publisher inventory.EventPublisher = messaging.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := messaging.NewKafkaPublisher(cfg.Kafka)
		s.closers = append(s.closers, kp.Close)
		publisher = kp
	}

	log.Info().
		Str("store", cfg.App.StoreDriver).
		Bool("redis", cfg.Redis.Enabled()).
		Bool("kafka", cfg.Kafka.Enabled()).
		Msg("adaptadores configurados")

	s.ReceivePurchase = inventory.NewReceivePurchaseUseCase(txRunner, publisher, log)
	s.AutoRestock = inventory.NewAutoRestockUseCase(txRunner, locker, publisher, log)
	s.SalesPerformance = analytics.NewSalesPerformanceUseCase(
		salesRepo, reportCache, cfg.Report.CacheTTL, infrapdf.NewMarotoPDFGenerator(), log,
	)
	return s, nil
}
