package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaxyebile/admin/internal/domain"
)

type orderRecord struct {
	ID        string             `json:"id"`
	MongoID   string             `json:"_id"`
	UserID    string             `json:"userId"`
	Items     []domain.OrderItem `json:"products"`
	Total     decimal.Decimal    `json:"total"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (r *orderRecord) toDomain() domain.Order {
	id := r.MongoID
	if id == "" {
		id = r.ID
	}
	return domain.Order{
		ID:        id,
		UserID:    r.UserID,
		Items:     r.Items,
		Total:     r.Total,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

type orderPayload struct {
	UserID string             `json:"userId"`
	Items  []domain.OrderItem `json:"products"`
	Total  decimal.Decimal    `json:"total"`
}

// CreateOrder submits an order payload and returns the created order with
// its server-assigned identifier and status
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	payload := orderPayload{
		UserID: order.UserID,
		Items:  order.Items,
		Total:  order.Total,
	}
	var record orderRecord
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &record); err != nil {
		return domain.Order{}, err
	}
	return record.toDomain(), nil
}

// FetchOrders retrieves the full order list
func (c *Client) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	return c.fetchOrderList(ctx, "/orders")
}

// FetchUserOrders retrieves the orders placed by a single user
func (c *Client) FetchUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return c.fetchOrderList(ctx, "/orders/user/"+url.PathEscape(userID))
}

func (c *Client) fetchOrderList(ctx context.Context, path string) ([]domain.Order, error) {
	var records []orderRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, len(records))
	for i := range records {
		orders[i] = records[i].toDomain()
	}
	return orders, nil
}

// UpdateOrderStatus transitions an order to the given status and returns the
// updated order
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (domain.Order, error) {
	payload := map[string]string{"status": status}
	var record orderRecord
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", payload, &record); err != nil {
		return domain.Order{}, err
	}
	return record.toDomain(), nil
}
