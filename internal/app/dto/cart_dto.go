package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yaxyebile/admin/internal/domain"
)

// AddCartItemRequest adds a product to the cart. Quantity defaults to 1
// when omitted.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// Validate checks the request against its field constraints
func (r *AddCartItemRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateCartItemRequest sets a line item quantity exactly; non-positive
// values remove the item
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest derives an order from the current cart for the given user
type CheckoutRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// Validate checks the request against its field constraints
func (r *CheckoutRequest) Validate() error {
	return validate.Struct(r)
}

// OrderItemRequest is one (product, quantity) pair in a custom order
type OrderItemRequest struct {
	ProductID string `json:"product" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// SubmitOrderRequest submits a fully caller-formed order
type SubmitOrderRequest struct {
	UserID string             `json:"userId" validate:"required"`
	Items  []OrderItemRequest `json:"products" validate:"min=1,dive"`
	Total  float64            `json:"total" validate:"gte=0"`
}

// Validate checks the request against its field constraints
func (r *SubmitOrderRequest) Validate() error {
	return validate.Struct(r)
}

// ToDomain converts the request to a domain order
func (r *SubmitOrderRequest) ToDomain() domain.Order {
	items := make([]domain.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return domain.Order{
		UserID: r.UserID,
		Items:  items,
		Total:  decimal.NewFromFloat(r.Total),
	}
}

// UpdateOrderStatusRequest transitions an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate checks the request against its field constraints
func (r *UpdateOrderStatusRequest) Validate() error {
	return validate.Struct(r)
}

// CartResponse is the cart view with its derived totals
type CartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
}
