// Package cache adaptadores Redis: cache del reporte de desempeño y lock de reposición.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/reposicion-api/internal/application/analytics"
	"github.com/jhoicas/reposicion-api/pkg/config"
)

var _ analytics.ReportCache = (*RedisReportCache)(nil)

// NewClient crea el cliente Redis a partir de la configuración.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisReportCache guarda el reporte serializado en JSON bajo la clave del query.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache construye el cache sobre un cliente existente.
func NewRedisReportCache(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{client: client}
}

// GetSalesPerformance devuelve ok=false si la clave no existe.
func (c *RedisReportCache) GetSalesPerformance(ctx context.Context, key string) (*analytics.SalesPerformanceReport, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var report analytics.SalesPerformanceReport
	if err := json.Unmarshal(val, &report); err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

// SetSalesPerformance guarda el reporte con expiración ttl.
func (c *RedisReportCache) SetSalesPerformance(ctx context.Context, key string, report *analytics.SalesPerformanceReport, ttl time.Duration) error {
	if report == nil {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// NoopReportCache cache vacío para cuando Redis no está configurado.
type NoopReportCache struct{}

func (NoopReportCache) GetSalesPerformance(context.Context, string) (*analytics.SalesPerformanceReport, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) SetSalesPerformance(context.Context, string, *analytics.SalesPerformanceReport, time.Duration) error {
	return nil
}
