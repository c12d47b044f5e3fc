package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un botellón u otro artículo del catálogo.
// Lo mantiene un distribuidor; la lectura es pública.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, nunca negativo
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
