package usecase

import (
	"time"

	"github.com/tu-usuario/aqua-delivery/internal/application/auth"
	"github.com/tu-usuario/aqua-delivery/internal/application/dto"
	"github.com/tu-usuario/aqua-delivery/internal/domain"
	"github.com/tu-usuario/aqua-delivery/internal/domain/entity"
	"github.com/tu-usuario/aqua-delivery/internal/domain/repository"
)

// UserUseCase casos de uso de perfil: lectura/edición de la cuenta propia
// y listado de repartidores para el distribuidor.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetProfile devuelve el perfil del usuario autenticado.
func (uc *UserUseCase) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// UpdateProfile actualiza nombre/teléfono/dirección del usuario autenticado.
// El email y el rol son inmutables desde este caso de uso.
func (uc *UserUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// ListWorkers lista las cuentas con rol worker (para que el distribuidor asigne entregas).
func (uc *UserUseCase) ListWorkers(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByRole(entity.RoleWorker, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
