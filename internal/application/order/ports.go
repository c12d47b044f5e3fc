package order

import (
	"context"

	"github.com/tu-usuario/aqua-delivery/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. La transición de estado lee, valida y escribe dentro de la misma
// transacción; entre requests concurrentes aplica last-write-wins (sin versionado).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		userRepo repository.UserRepository,
	) error) error
}
