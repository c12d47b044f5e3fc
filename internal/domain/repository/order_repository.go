package repository

import "github.com/tu-usuario/aqua-delivery/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// Update sobreescribe el pedido completo (last-write-wins; sin versionado).
	Update(order *entity.Order) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error)
	ListByDistributor(distributorID string, limit, offset int) ([]*entity.Order, error)
	ListByWorker(workerID string, limit, offset int) ([]*entity.Order, error)
}
