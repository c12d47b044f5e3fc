// Package order define el ciclo de vida de un pedido: vocabulario canónico de
// estados y la tabla de transiciones permitidas por (rol, estado origen).
// Es lógica de dominio pura, sin dependencias de transporte ni persistencia.
package order

import (
	"github.com/tu-usuario/aqua-delivery/internal/domain"
	"github.com/tu-usuario/aqua-delivery/internal/domain/entity"
)

// Estados canónicos de un pedido. "pending" es el inicial;
// "delivered" y "cancelled" son terminales.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusInTransit = "in-transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatus indica si s pertenece al vocabulario canónico.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal indica si el estado no admite transiciones salientes.
func Terminal(s string) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// transitions es la tabla de permisos: (rol, estado origen) -> estados destino permitidos.
// Los clientes no tienen fila: nunca pueden transicionar un pedido.
// Los estados terminales tampoco: ninguna fila tiene origen delivered/cancelled.
var transitions = map[string]map[string][]string{
	entity.RoleDistributor: {
		StatusPending:   {StatusPending, StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusPending, StatusConfirmed, StatusCancelled},
		StatusInTransit: {StatusConfirmed, StatusCancelled},
	},
	entity.RoleWorker: {
		StatusConfirmed: {StatusConfirmed, StatusInTransit, StatusDelivered},
		StatusInTransit: {StatusConfirmed, StatusInTransit, StatusDelivered},
	},
}

// CanTransition valida que el actor con rol role pueda llevar un pedido de from a to.
//
// Errores:
//   - domain.ErrInvalidStatus si to no es un estado canónico.
//   - domain.ErrOrderFinalized si from es terminal (delivered/cancelled).
//   - domain.ErrForbidden si el rol no tiene ninguna transición (customer).
//   - domain.ErrInvalidStatus si la tabla no permite el destino para (rol, from).
func CanTransition(role, from, to string) error {
	if !ValidStatus(to) {
		return domain.ErrInvalidStatus
	}
	if Terminal(from) {
		return domain.ErrOrderFinalized
	}
	byFrom, ok := transitions[role]
	if !ok {
		return domain.ErrForbidden
	}
	allowed, ok := byFrom[from]
	if !ok {
		return domain.ErrInvalidStatus
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return domain.ErrInvalidStatus
}

// AllowedTargets devuelve los destinos permitidos para (rol, from).
// Útil para que la UI deshabilite acciones; orden estable de la tabla.
func AllowedTargets(role, from string) []string {
	byFrom, ok := transitions[role]
	if !ok {
		return nil
	}
	return append([]string(nil), byFrom[from]...)
}
