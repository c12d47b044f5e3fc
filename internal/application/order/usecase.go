package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/aqua-delivery/internal/application/dto"
	"github.com/tu-usuario/aqua-delivery/internal/domain"
	"github.com/tu-usuario/aqua-delivery/internal/domain/entity"
	domainorder "github.com/tu-usuario/aqua-delivery/internal/domain/order"
	"github.com/tu-usuario/aqua-delivery/internal/domain/repository"
)

// UseCase casos de uso del ciclo de vida del pedido: creación, consulta y
// transición de estado gobernada por la tabla de internal/domain/order.
type UseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, userRepo: userRepo}
}

// Create crea un pedido en estado pending. Solo clientes; el distribuidor
// referenciado debe existir con rol distributor.
//
// Errores: ErrForbidden si el actor no es customer; ErrInvalidInput si
// quantity < 1; ErrNotFound si el distribuidor no existe con ese rol.
func (uc *UseCase) Create(actorID, actorRole string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actorRole != entity.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	distributor, err := uc.userRepo.GetByIDAndRole(in.DistributorID, entity.RoleDistributor)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, domain.ErrNotFound
	}
	o := &entity.Order{
		ID:                uuid.New().String(),
		CustomerID:        actorID,
		DistributorID:     in.DistributorID,
		Quantity:          in.Quantity,
		Status:            domainorder.StatusPending,
		Notes:             in.Notes,
		ScheduledDelivery: in.ScheduledDelivery,
		CreatedAt:         time.Now(),
	}
	if err := uc.orderRepo.Create(o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Transition cambia el estado de un pedido dentro de una transacción:
// lee, valida propiedad y tabla de transiciones, aplica efectos y escribe.
//
// Reglas:
//   - El distribuidor solo actúa sobre pedidos donde es DistributorID;
//     el repartidor solo sobre pedidos donde es el WorkerID asignado.
//   - El distribuidor puede adjuntar worker_id al confirmar; el usuario
//     destino debe existir con rol worker.
//   - Cuando el repartidor marca delivered, se estampa DeliveredAt.
//   - Re-aplicar el estado actual desde un estado no terminal es un no-op
//     exitoso; los estados terminales rechazan toda transición.
func (uc *UseCase) Transition(ctx context.Context, orderID, actorID, actorRole string, in dto.TransitionOrderRequest) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, userRepo repository.UserRepository) error {
		o, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}

		switch actorRole {
		case entity.RoleDistributor:
			if o.DistributorID != actorID {
				return domain.ErrForbidden
			}
		case entity.RoleWorker:
			if o.WorkerID == "" || o.WorkerID != actorID {
				return domain.ErrForbidden
			}
		default:
			return domain.ErrForbidden
		}

		if err := domainorder.CanTransition(actorRole, o.Status, in.Status); err != nil {
			return err
		}

		if actorRole == entity.RoleDistributor && in.WorkerID != "" && in.Status == domainorder.StatusConfirmed {
			worker, err := userRepo.GetByIDAndRole(in.WorkerID, entity.RoleWorker)
			if err != nil {
				return err
			}
			if worker == nil {
				return domain.ErrWorkerNotFound
			}
			o.WorkerID = in.WorkerID
		}

		o.Status = in.Status
		if in.Status == domainorder.StatusDelivered {
			now := time.Now()
			o.DeliveredAt = &now
		}

		if err := orderRepo.Update(o); err != nil {
			return err
		}
		out = toOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve los pedidos del actor según su rol (cliente/distribuidor/repartidor),
// más recientes primero.
func (uc *UseCase) List(actorID, actorRole string, limit, offset int) (*dto.OrderListResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	switch actorRole {
	case entity.RoleCustomer:
		list, err = uc.orderRepo.ListByCustomer(actorID, limit, offset)
	case entity.RoleDistributor:
		list, err = uc.orderRepo.ListByDistributor(actorID, limit, offset)
	case entity.RoleWorker:
		list, err = uc.orderRepo.ListByWorker(actorID, limit, offset)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID devuelve un pedido aplicando la regla de visibilidad:
// solo su cliente, su distribuidor o su repartidor asignado.
func (uc *UseCase) GetByID(orderID, actorID, actorRole string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !o.VisibleTo(actorID, actorRole) {
		return nil, domain.ErrForbidden
	}
	return toOrderResponse(o), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		DistributorID:     o.DistributorID,
		WorkerID:          o.WorkerID,
		Quantity:          o.Quantity,
		Status:            o.Status,
		Notes:             o.Notes,
		ScheduledDelivery: o.ScheduledDelivery,
		CreatedAt:         o.CreatedAt,
		DeliveredAt:       o.DeliveredAt,
	}
}
