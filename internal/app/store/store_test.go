package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/yaxyebile/admin/internal/domain"
	"github.com/yaxyebile/admin/internal/infrastructure/cartstorage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCatalogStore(backend domain.CatalogBackend) *CatalogStore {
	return NewCatalogStore(
		backend,
		tracenoop.NewTracerProvider().Tracer("test"),
		metricnoop.NewMeterProvider().Meter("test"),
		testLogger(),
	)
}

func newTestCartStore(backend domain.OrderBackend, storage cartstorage.Storage) *CartStore {
	if storage == nil {
		storage = &memStorage{}
	}
	return NewCartStore(
		backend,
		storage,
		tracenoop.NewTracerProvider().Tracer("test"),
		metricnoop.NewMeterProvider().Meter("test"),
		testLogger(),
	)
}

// memStorage is an in-memory cartstorage.Storage for tests. Setting failSave
// makes every subsequent write fail.
type memStorage struct {
	mu       sync.Mutex
	blob     []byte
	failSave bool
}

func (s *memStorage) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errors.New("storage unavailable")
	}
	s.blob = append([]byte(nil), data...)
	return nil
}

func (s *memStorage) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, nil
	}
	return append([]byte(nil), s.blob...), nil
}

// fakeCatalogBackend implements domain.CatalogBackend with overridable
// behavior per call
type fakeCatalogBackend struct {
	fetchProducts   func(ctx context.Context) ([]domain.Product, error)
	fetchProduct    func(ctx context.Context, id string) (domain.Product, error)
	createProduct   func(ctx context.Context, p domain.Product) (domain.Product, error)
	updateProduct   func(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	deleteProduct   func(ctx context.Context, id string) error
	fetchCategories func(ctx context.Context) ([]domain.Category, error)
	createCategory  func(ctx context.Context, c domain.Category) (domain.Category, error)
	updateCategory  func(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error)
	deleteCategory  func(ctx context.Context, id string) error
}

func (f *fakeCatalogBackend) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if f.fetchProducts == nil {
		return nil, nil
	}
	return f.fetchProducts(ctx)
}

func (f *fakeCatalogBackend) FetchProduct(ctx context.Context, id string) (domain.Product, error) {
	if f.fetchProduct == nil {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return f.fetchProduct(ctx, id)
}

func (f *fakeCatalogBackend) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if f.createProduct == nil {
		return p, nil
	}
	return f.createProduct(ctx, p)
}

func (f *fakeCatalogBackend) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	if f.updateProduct == nil {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return f.updateProduct(ctx, id, patch)
}

func (f *fakeCatalogBackend) DeleteProduct(ctx context.Context, id string) error {
	if f.deleteProduct == nil {
		return nil
	}
	return f.deleteProduct(ctx, id)
}

func (f *fakeCatalogBackend) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	if f.fetchCategories == nil {
		return nil, nil
	}
	return f.fetchCategories(ctx)
}

func (f *fakeCatalogBackend) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	if f.createCategory == nil {
		return c, nil
	}
	return f.createCategory(ctx, c)
}

func (f *fakeCatalogBackend) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error) {
	if f.updateCategory == nil {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return f.updateCategory(ctx, id, patch)
}

func (f *fakeCatalogBackend) DeleteCategory(ctx context.Context, id string) error {
	if f.deleteCategory == nil {
		return nil
	}
	return f.deleteCategory(ctx, id)
}

// fakeOrderBackend implements domain.OrderBackend
type fakeOrderBackend struct {
	createOrder     func(ctx context.Context, o domain.Order) (domain.Order, error)
	fetchOrders     func(ctx context.Context) ([]domain.Order, error)
	fetchUserOrders func(ctx context.Context, userID string) ([]domain.Order, error)
	updateStatus    func(ctx context.Context, id, status string) (domain.Order, error)
}

func (f *fakeOrderBackend) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	if f.createOrder == nil {
		o.ID = "order-1"
		o.Status = "pending"
		return o, nil
	}
	return f.createOrder(ctx, o)
}

func (f *fakeOrderBackend) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	if f.fetchOrders == nil {
		return nil, nil
	}
	return f.fetchOrders(ctx)
}

func (f *fakeOrderBackend) FetchUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if f.fetchUserOrders == nil {
		return nil, nil
	}
	return f.fetchUserOrders(ctx, userID)
}

func (f *fakeOrderBackend) UpdateOrderStatus(ctx context.Context, id, status string) (domain.Order, error) {
	if f.updateStatus == nil {
		return domain.Order{ID: id, Status: status}, nil
	}
	return f.updateStatus(ctx, id, status)
}
