package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reposicion-api/internal/domain"
)

func TestPurchaseOrder_MarkReceived(t *testing.T) {
	po := &PurchaseOrder{ID: 7, Quantity: 40}
	require.True(t, po.Outstanding())

	at := time.Date(2026, 10, 19, 18, 45, 0, 0, time.UTC)
	require.NoError(t, po.MarkReceived(at))

	assert.True(t, po.Received)
	require.NotNil(t, po.ReceivedDate)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), *po.ReceivedDate)

	// segunda recepción no permitida
	assert.ErrorIs(t, po.MarkReceived(at), domain.ErrAlreadyReceived)
}

func TestProduct_Available(t *testing.T) {
	p := Product{UnitsInStock: 3, UnitsOnOrder: 7}
	assert.Equal(t, 10, p.Available())
}
