package dto

import "time"

// CreateOrderRequest entrada para crear un pedido (solo clientes).
type CreateOrderRequest struct {
	DistributorID     string     `json:"distributor_id" validate:"required,uuid"`
	Quantity          int        `json:"quantity" validate:"required,min=1"`
	ScheduledDelivery *time.Time `json:"scheduled_delivery"`
	Notes             string     `json:"notes" validate:"omitempty,max=500"`
}

// TransitionOrderRequest entrada para cambiar el estado de un pedido.
// WorkerID solo lo usa el distribuidor al confirmar, para asignar repartidor.
type TransitionOrderRequest struct {
	Status   string `json:"status" validate:"required,oneof=pending confirmed in-transit delivered cancelled"`
	WorkerID string `json:"worker_id" validate:"omitempty,uuid"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customer_id"`
	DistributorID     string     `json:"distributor_id"`
	WorkerID          string     `json:"worker_id,omitempty"`
	Quantity          int        `json:"quantity"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	ScheduledDelivery *time.Time `json:"scheduled_delivery,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
}

// OrderListResponse listado paginado de pedidos del actor.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
