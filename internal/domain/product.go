package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductName     = errors.New("product name is required")
	ErrInvalidProductSlug     = errors.New("product slug is required")
	ErrMissingProductCategory = errors.New("product category slug is required")
	ErrNegativeProductPrice   = errors.New("product price must not be negative")
	ErrNegativeProductStock   = errors.New("product stock must not be negative")

	ErrInvalidCategoryName = errors.New("category name is required")
	ErrInvalidCategorySlug = errors.New("category slug is required")
)

func init() {
	// The remote backend exchanges prices and totals as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a catalog product entity
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if p.Slug == "" {
		return ErrInvalidProductSlug
	}
	if p.Category == "" {
		return ErrMissingProductCategory
	}
	if p.Price.IsNegative() {
		return ErrNegativeProductPrice
	}
	if p.Stock < 0 {
		return ErrNegativeProductStock
	}
	return nil
}

// ProductPatch is a partial product update; nil fields are left unchanged
// by the backend.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Slug        *string          `json:"slug,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Subcategory *string          `json:"subcategory,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
}

// Category represents a catalog category with its owned subcategories
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Image         string        `json:"image,omitempty"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Validate performs business validation on the category
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrInvalidCategoryName
	}
	if c.Slug == "" {
		return ErrInvalidCategorySlug
	}
	return nil
}

// Subcategory is owned by exactly one category and is not independently
// addressable outside of it.
type Subcategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CategoryPatch is a partial category update
type CategoryPatch struct {
	Name          *string        `json:"name,omitempty"`
	Slug          *string        `json:"slug,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Image         *string        `json:"image,omitempty"`
	Subcategories *[]Subcategory `json:"subcategories,omitempty"`
}
