// Package store holds the stateful layer between the HTTP surface and the
// remote backend: an in-memory catalog cache and a persisted cart. Caches
// are advisory and only mutate after the backend confirms an operation, so
// a failed remote call never leaves local state diverged.
package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/yaxyebile/admin/internal/domain"
)

// CatalogStore caches products and categories fetched from the remote
// backend and reconciles the cache from each mutation's response.
type CatalogStore struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category

	backend domain.CatalogBackend
	guard   *inflightGuard
	tracer  trace.Tracer
	logger  *slog.Logger

	mutations metric.Int64Counter
}

// NewCatalogStore creates a catalog store with an empty cache. Call Load to
// populate it.
func NewCatalogStore(
	backend domain.CatalogBackend,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CatalogStore {
	mutations, _ := meter.Int64Counter(
		"catalog.mutations",
		metric.WithDescription("Total number of catalog mutations by operation and result"),
	)

	return &CatalogStore{
		backend:   backend,
		guard:     newInflightGuard(),
		tracer:    tracer,
		logger:    logger,
		mutations: mutations,
	}
}

func (s *CatalogStore) record(ctx context.Context, op, result string) {
	s.mutations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("result", result),
		),
	)
}

// Load fetches products and categories and replaces the cache. The error is
// returned to the caller; the cache is left untouched on failure.
func (s *CatalogStore) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.Load")
	defer span.End()

	products, err := s.backend.FetchProducts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch products")
		return err
	}

	categories, err := s.backend.FetchCategories(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch categories")
		return err
	}

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int("catalog.product_count", len(products)),
		attribute.Int("catalog.category_count", len(categories)),
	)
	s.logger.InfoContext(ctx, "Catalog loaded",
		slog.Int("products", len(products)),
		slog.Int("categories", len(categories)),
	)

	span.SetStatus(codes.Ok, "Catalog loaded")
	return nil
}

// Products returns a snapshot of the cached product list
func (s *CatalogStore) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns a snapshot of the cached category list
func (s *CatalogStore) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// GetProduct serves from the cache and falls back to the backend on a miss,
// inserting the fetched record into the cache.
func (s *CatalogStore) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.GetProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	s.mu.RLock()
	for _, p := range s.products {
		if p.ID == id {
			s.mu.RUnlock()
			span.SetStatus(codes.Ok, "Product served from cache")
			return p, nil
		}
	}
	s.mu.RUnlock()

	product, err := s.backend.FetchProduct(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		return domain.Product{}, err
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	s.mu.Unlock()

	span.SetStatus(codes.Ok, "Product fetched from backend")
	return product, nil
}

// AddProduct submits a new product to the backend and appends the created
// record to the cache
func (s *CatalogStore) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.AddProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.slug", product.Slug))

	if err := product.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		s.record(ctx, "product.create", "invalid")
		return domain.Product{}, err
	}

	// Creates have no entity ID yet, so duplicates are keyed by slug.
	if err := s.guard.begin("product.create", product.Slug); err != nil {
		s.record(ctx, "product.create", "duplicate")
		return domain.Product{}, err
	}
	defer s.guard.end("product.create", product.Slug)

	created, err := s.backend.CreateProduct(ctx, product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend create failed")
		s.record(ctx, "product.create", "failure")
		return domain.Product{}, err
	}

	s.mu.Lock()
	s.products = append(s.products, created)
	s.mu.Unlock()

	s.record(ctx, "product.create", "success")
	s.logger.InfoContext(ctx, "Product created",
		slog.String("product_id", created.ID),
		slog.String("product_name", created.Name),
	)

	span.SetAttributes(attribute.String("product.id", created.ID))
	span.SetStatus(codes.Ok, "Product created")
	return created, nil
}

// UpdateProduct submits a partial patch and replaces the cached record with
// the backend's full response
func (s *CatalogStore) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.UpdateProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	if err := s.guard.begin("product.update", id); err != nil {
		s.record(ctx, "product.update", "duplicate")
		return domain.Product{}, err
	}
	defer s.guard.end("product.update", id)

	updated, err := s.backend.UpdateProduct(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend update failed")
		s.record(ctx, "product.update", "failure")
		return domain.Product{}, err
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.record(ctx, "product.update", "success")
	s.logger.InfoContext(ctx, "Product updated",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product updated")
	return updated, nil
}

// DeleteProduct deletes the product remotely, then removes the matching
// cached record. A failed remote call leaves the cache unchanged.
func (s *CatalogStore) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	if err := s.guard.begin("product.delete", id); err != nil {
		s.record(ctx, "product.delete", "duplicate")
		return err
	}
	defer s.guard.end("product.delete", id)

	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend delete failed")
		s.record(ctx, "product.delete", "failure")
		return err
	}

	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()

	s.record(ctx, "product.delete", "success")
	s.logger.InfoContext(ctx, "Product deleted",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}

// AddCategory submits a new category and appends the created record to the
// cache. Subcategories without identifiers get generated temporary IDs
// before the round-trip.
func (s *CatalogStore) AddCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.AddCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.slug", category.Slug))

	if err := category.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		s.record(ctx, "category.create", "invalid")
		return domain.Category{}, err
	}

	if err := s.guard.begin("category.create", category.Slug); err != nil {
		s.record(ctx, "category.create", "duplicate")
		return domain.Category{}, err
	}
	defer s.guard.end("category.create", category.Slug)

	category.Subcategories = ensureSubcategoryIDs(category.Subcategories)

	created, err := s.backend.CreateCategory(ctx, category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend create failed")
		s.record(ctx, "category.create", "failure")
		return domain.Category{}, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.mu.Unlock()

	s.record(ctx, "category.create", "success")
	s.logger.InfoContext(ctx, "Category created",
		slog.String("category_id", created.ID),
		slog.String("category_name", created.Name),
	)

	span.SetStatus(codes.Ok, "Category created")
	return created, nil
}

// UpdateCategory submits a partial patch and replaces the cached record with
// the backend's full response
func (s *CatalogStore) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.UpdateCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", id))

	if err := s.guard.begin("category.update", id); err != nil {
		s.record(ctx, "category.update", "duplicate")
		return domain.Category{}, err
	}
	defer s.guard.end("category.update", id)

	if patch.Subcategories != nil {
		withIDs := ensureSubcategoryIDs(*patch.Subcategories)
		patch.Subcategories = &withIDs
	}

	updated, err := s.backend.UpdateCategory(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend update failed")
		s.record(ctx, "category.update", "failure")
		return domain.Category{}, err
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.record(ctx, "category.update", "success")
	s.logger.InfoContext(ctx, "Category updated",
		slog.String("category_id", id),
	)

	span.SetStatus(codes.Ok, "Category updated")
	return updated, nil
}

// DeleteCategory deletes the category remotely, then removes the matching
// cached record
func (s *CatalogStore) DeleteCategory(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.DeleteCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", id))

	if err := s.guard.begin("category.delete", id); err != nil {
		s.record(ctx, "category.delete", "duplicate")
		return err
	}
	defer s.guard.end("category.delete", id)

	if err := s.backend.DeleteCategory(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend delete failed")
		s.record(ctx, "category.delete", "failure")
		return err
	}

	s.mu.Lock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.mu.Unlock()

	s.record(ctx, "category.delete", "success")
	s.logger.InfoContext(ctx, "Category deleted",
		slog.String("category_id", id),
	)

	span.SetStatus(codes.Ok, "Category deleted")
	return nil
}

// ProductsByCategory filters cached products by exact category slug match.
// A non-empty subcategory slug further restricts the result.
func (s *CatalogStore) ProductsByCategory(categorySlug, subcategorySlug string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if p.Category != categorySlug {
			continue
		}
		if subcategorySlug != "" && p.Subcategory != subcategorySlug {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FeaturedProducts filters cached products by the featured flag
func (s *CatalogStore) FeaturedProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// SearchProducts filters cached products by case-insensitive substring match
// over name and category slug. An empty query returns everything.
func (s *CatalogStore) SearchProducts(query string) []domain.Product {
	if query == "" {
		return s.Products()
	}
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// SearchCategories filters cached categories by case-insensitive substring
// match over name and slug
func (s *CatalogStore) SearchCategories(query string) []domain.Category {
	if query == "" {
		return s.Categories()
	}
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Category
	for _, c := range s.categories {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Slug), q) {
			out = append(out, c)
		}
	}
	return out
}

func ensureSubcategoryIDs(subs []domain.Subcategory) []domain.Subcategory {
	out := make([]domain.Subcategory, len(subs))
	for i, sub := range subs {
		if sub.ID == "" {
			sub.ID = uuid.New().String()
		}
		out[i] = sub
	}
	return out
}
