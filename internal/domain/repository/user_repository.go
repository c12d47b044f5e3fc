package repository

import "github.com/tu-usuario/aqua-delivery/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByIDAndRole devuelve el usuario solo si existe con ese rol (nil, nil si no).
	GetByIDAndRole(id, role string) (*entity.User, error)
	Update(user *entity.User) error
	ListByRole(role string, limit, offset int) ([]*entity.User, error)
}
