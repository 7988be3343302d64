package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reposicion-api/pkg/config"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

func TestBuild_MemoryStoreWithoutRedisOrKafka(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{StoreDriver: config.StoreDriverMemory}}

	s, err := Build(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.ReceivePurchase)
	assert.NotNil(t, s.AutoRestock)
	assert.NotNil(t, s.SalesPerformance)

	// Almacén vacío: la corrida no encuentra candidatos.
	res, err := s.AutoRestock.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Advice)
}

func TestBuild_MemoryStoreWithSeed(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{
		StoreDriver: config.StoreDriverMemory,
		SeedFile:    "../infrastructure/memory/testdata/seed.json",
	}}

	s, err := Build(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	// Gumbo Mix (stock 0, umbral 8) es el único candidato del seed.
	res, err := s.AutoRestock.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Advice, 1)
	assert.Equal(t, int64(5), res.Advice[0].ProductID)
	assert.Equal(t, 16, res.Advice[0].Quantity)
}

func TestBuild_MemoryStoreBadSeedFails(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{StoreDriver: config.StoreDriverMemory, SeedFile: "no-existe.json"}}

	_, err := Build(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
