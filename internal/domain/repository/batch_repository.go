package repository

import (
	"context"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// BatchRepository puerto de persistencia para lotes. Solo inserción.
type BatchRepository interface {
	// Create inserta el lote y asigna BatchNumber.
	Create(ctx context.Context, batch *entity.Batch) error
}
