package entity

import "time"

// Order es la entidad central: un pedido de botellones entre un cliente y un distribuidor,
// entregado por un repartidor asignado.
//
// Invariantes:
//   - DeliveredAt está definido si y solo si el estado es "delivered".
//   - WorkerID solo lo asigna el distribuidor del pedido, nunca el cliente.
type Order struct {
	ID                string
	CustomerID        string
	DistributorID     string
	WorkerID          string // vacío hasta que el distribuidor asigna un repartidor
	Quantity          int    // >= 1
	Status            string // ver internal/domain/order
	Notes             string
	ScheduledDelivery *time.Time
	CreatedAt         time.Time // inmutable después de la creación
	DeliveredAt       *time.Time
}

// VisibleTo indica si el actor (id + rol) puede ver este pedido:
// solo su cliente, su distribuidor y su repartidor asignado.
func (o *Order) VisibleTo(actorID, actorRole string) bool {
	switch actorRole {
	case RoleCustomer:
		return o.CustomerID == actorID
	case RoleDistributor:
		return o.DistributorID == actorID
	case RoleWorker:
		return o.WorkerID != "" && o.WorkerID == actorID
	}
	return false
}
