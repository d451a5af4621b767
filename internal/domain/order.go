package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingOrderUser   = errors.New("order user reference is required")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrNegativeOrderTotal = errors.New("order total must not be negative")
)

// OrderItem references a product and a purchased quantity
type OrderItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// Order is the payload exchanged with the remote order service. The status
// and identifier are assigned server-side and stored verbatim.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []OrderItem     `json:"products"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Validate performs business validation on an outgoing order
func (o *Order) Validate() error {
	if o.UserID == "" {
		return ErrMissingOrderUser
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if o.Total.IsNegative() {
		return ErrNegativeOrderTotal
	}
	return nil
}
