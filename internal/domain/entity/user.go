package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer    = "customer"    // crea pedidos
	RoleDistributor = "distributor" // confirma pedidos y asigna repartidores
	RoleWorker      = "worker"      // avanza la entrega
)

// ValidRole indica si s es uno de los roles soportados.
func ValidRole(s string) bool {
	return s == RoleCustomer || s == RoleDistributor || s == RoleWorker
}

// User representa una cuenta del sistema. El rol es inmutable después del registro.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Phone        string
	Address      string
	Role         string // customer, distributor, worker
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
