package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaxyebile/admin/internal/domain"
)

// defaultCategoryImage substitutes for categories stored without an image
const defaultCategoryImage = "/default-category.png"

// productRecord is the wire shape of a product. Records written before the
// backend migration carry the persistence-layer `_id` instead of `id`.
type productRecord struct {
	ID          string          `json:"id"`
	MongoID     string          `json:"_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (r *productRecord) toDomain() domain.Product {
	id := r.MongoID
	if id == "" {
		id = r.ID
	}
	return domain.Product{
		ID:          id,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Stock:       r.Stock,
		Featured:    r.Featured,
		CreatedAt:   r.CreatedAt,
	}
}

// productPayload is the outgoing shape: the server assigns id and createdAt
type productPayload struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
}

func toProductPayload(p domain.Product) productPayload {
	return productPayload{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Stock:       p.Stock,
		Featured:    p.Featured,
	}
}

type categoryRecord struct {
	ID            string               `json:"id"`
	MongoID       string               `json:"_id"`
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	Description   string               `json:"description"`
	Image         string               `json:"image"`
	Subcategories []domain.Subcategory `json:"subcategories"`
}

func (r *categoryRecord) toDomain() domain.Category {
	id := r.MongoID
	if id == "" {
		id = r.ID
	}
	image := r.Image
	if image == "" {
		image = defaultCategoryImage
	}
	return domain.Category{
		ID:            id,
		Name:          r.Name,
		Slug:          r.Slug,
		Description:   r.Description,
		Image:         image,
		Subcategories: r.Subcategories,
	}
}

type categoryPayload struct {
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	Description   string               `json:"description"`
	Image         string               `json:"image,omitempty"`
	Subcategories []domain.Subcategory `json:"subcategories"`
}

func toCategoryPayload(c domain.Category) categoryPayload {
	return categoryPayload{
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		Image:         c.Image,
		Subcategories: c.Subcategories,
	}
}

// FetchProducts retrieves the full product list
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var records []productRecord
	if err := c.do(ctx, http.MethodGet, "/products", nil, &records); err != nil {
		return nil, err
	}
	products := make([]domain.Product, len(records))
	for i := range records {
		products[i] = records[i].toDomain()
	}
	return products, nil
}

// FetchProduct retrieves a single product by ID
func (c *Client) FetchProduct(ctx context.Context, id string) (domain.Product, error) {
	var record productRecord
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &record); err != nil {
		return domain.Product{}, err
	}
	return record.toDomain(), nil
}

// CreateProduct submits a product minus its server-assigned fields and
// returns the created record
func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var record productRecord
	if err := c.do(ctx, http.MethodPost, "/products", toProductPayload(product), &record); err != nil {
		return domain.Product{}, err
	}
	return record.toDomain(), nil
}

// UpdateProduct submits a partial patch and returns the full updated record
func (c *Client) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	var record productRecord
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), patch, &record); err != nil {
		return domain.Product{}, err
	}
	return record.toDomain(), nil
}

// DeleteProduct removes a product by ID
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// FetchCategories retrieves the full category list
func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var records []categoryRecord
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &records); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, len(records))
	for i := range records {
		categories[i] = records[i].toDomain()
	}
	return categories, nil
}

// CreateCategory submits a category minus its server-assigned ID and returns
// the created record
func (c *Client) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	var record categoryRecord
	if err := c.do(ctx, http.MethodPost, "/categories", toCategoryPayload(category), &record); err != nil {
		return domain.Category{}, err
	}
	return record.toDomain(), nil
}

// UpdateCategory submits a partial patch and returns the full updated record
func (c *Client) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error) {
	var record categoryRecord
	if err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), patch, &record); err != nil {
		return domain.Category{}, err
	}
	return record.toDomain(), nil
}

// DeleteCategory removes a category by ID
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}
