package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// CatalogBackend defines the contract with the remote catalog service.
// Create operations submit the entity minus its server-assigned fields and
// return the created record; update operations submit a partial patch and
// return the full updated record.
type CatalogBackend interface {
	FetchProducts(ctx context.Context) ([]Product, error)
	FetchProduct(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, product Product) (Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, error)
	DeleteProduct(ctx context.Context, id string) error

	FetchCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, category Category) (Category, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// OrderBackend defines the contract with the remote order service
type OrderBackend interface {
	CreateOrder(ctx context.Context, order Order) (Order, error)
	FetchOrders(ctx context.Context) ([]Order, error)
	FetchUserOrders(ctx context.Context, userID string) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (Order, error)
}
