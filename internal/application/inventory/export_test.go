package inventory

import "time"

// SetClock fija el reloj de los casos de uso en tests.
func (uc *ReceivePurchaseUseCase) SetClock(now func() time.Time) { uc.now = now }

// SetClock fija el reloj de los casos de uso en tests.
func (uc *AutoRestockUseCase) SetClock(now func() time.Time) { uc.now = now }
