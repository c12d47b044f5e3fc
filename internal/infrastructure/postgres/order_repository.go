package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aqua-delivery/internal/domain/entity"
	"github.com/tu-usuario/aqua-delivery/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// worker_id, scheduled_delivery y delivered_at son NULLables; se mapean con punteros
// o string vacío según la entidad.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, customer_id, distributor_id, worker_id, quantity, status, notes, scheduled_delivery, created_at, delivered_at`

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, distributor_id, worker_id, quantity, status, notes, scheduled_delivery, created_at, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.CustomerID, o.DistributorID, nullIfEmpty(o.WorkerID), o.Quantity, o.Status,
		o.Notes, o.ScheduledDelivery, o.CreatedAt, o.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID (nil, nil si no existe).
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update sobreescribe el pedido completo (last-write-wins). created_at no se toca.
func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders SET worker_id = $2, quantity = $3, status = $4, notes = $5, scheduled_delivery = $6, delivered_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, nullIfEmpty(o.WorkerID), o.Quantity, o.Status, o.Notes, o.ScheduledDelivery, o.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ListByCustomer lista los pedidos del cliente, más recientes primero.
func (r *OrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error) {
	return r.listWhere(`customer_id = $1`, customerID, limit, offset)
}

// ListByDistributor lista los pedidos del distribuidor, más recientes primero.
func (r *OrderRepo) ListByDistributor(distributorID string, limit, offset int) ([]*entity.Order, error) {
	return r.listWhere(`distributor_id = $1`, distributorID, limit, offset)
}

// ListByWorker lista los pedidos asignados al repartidor, más recientes primero.
func (r *OrderRepo) ListByWorker(workerID string, limit, offset int) ([]*entity.Order, error) {
	return r.listWhere(`worker_id = $1`, workerID, limit, offset)
}

func (r *OrderRepo) listWhere(cond, arg string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE ` + cond + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, arg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o        entity.Order
		workerID *string
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.DistributorID, &workerID, &o.Quantity, &o.Status,
		&o.Notes, &o.ScheduledDelivery, &o.CreatedAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	if workerID != nil {
		o.WorkerID = *workerID
	}
	return &o, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
