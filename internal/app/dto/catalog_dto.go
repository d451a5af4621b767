// Package dto carries the request and response shapes of the HTTP surface.
// Requests coerce loosely-typed form input into domain types and are
// validated before they reach a store.
package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yaxyebile/admin/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateProductRequest represents the product create form submission
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category" validate:"required"`
	Subcategory string  `json:"subcategory"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Featured    bool    `json:"featured"`
}

// Validate checks the request against its field constraints
func (r *CreateProductRequest) Validate() error {
	return validate.Struct(r)
}

// ToDomain converts the request to a domain product without server-assigned
// fields
func (r *CreateProductRequest) ToDomain() domain.Product {
	return domain.Product{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       decimal.NewFromFloat(r.Price),
		Image:       r.Image,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Stock:       r.Stock,
		Featured:    r.Featured,
	}
}

// UpdateProductRequest represents the product edit form submission; absent
// fields are left unchanged
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Slug        *string  `json:"slug,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Image       *string  `json:"image,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Featured    *bool    `json:"featured,omitempty"`
}

// Validate checks the request against its field constraints
func (r *UpdateProductRequest) Validate() error {
	return validate.Struct(r)
}

// ToPatch converts the request to a domain patch
func (r *UpdateProductRequest) ToPatch() domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Stock:       r.Stock,
		Featured:    r.Featured,
	}
	if r.Price != nil {
		price := decimal.NewFromFloat(*r.Price)
		patch.Price = &price
	}
	return patch
}

// SubcategoryRequest is one subcategory row in a category form
type SubcategoryRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
}

// CreateCategoryRequest represents the category create form submission
type CreateCategoryRequest struct {
	Name          string               `json:"name" validate:"required"`
	Slug          string               `json:"slug" validate:"required"`
	Description   string               `json:"description"`
	Image         string               `json:"image"`
	Subcategories []SubcategoryRequest `json:"subcategories" validate:"dive"`
}

// Validate checks the request against its field constraints
func (r *CreateCategoryRequest) Validate() error {
	return validate.Struct(r)
}

// ToDomain converts the request to a domain category
func (r *CreateCategoryRequest) ToDomain() domain.Category {
	return domain.Category{
		Name:          r.Name,
		Slug:          r.Slug,
		Description:   r.Description,
		Image:         r.Image,
		Subcategories: toSubcategories(r.Subcategories),
	}
}

// UpdateCategoryRequest represents the category edit form submission
type UpdateCategoryRequest struct {
	Name          *string               `json:"name,omitempty"`
	Slug          *string               `json:"slug,omitempty"`
	Description   *string               `json:"description,omitempty"`
	Image         *string               `json:"image,omitempty"`
	Subcategories *[]SubcategoryRequest `json:"subcategories,omitempty" validate:"omitempty,dive"`
}

// Validate checks the request against its field constraints
func (r *UpdateCategoryRequest) Validate() error {
	return validate.Struct(r)
}

// ToPatch converts the request to a domain patch
func (r *UpdateCategoryRequest) ToPatch() domain.CategoryPatch {
	patch := domain.CategoryPatch{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
	}
	if r.Subcategories != nil {
		subs := toSubcategories(*r.Subcategories)
		patch.Subcategories = &subs
	}
	return patch
}

func toSubcategories(reqs []SubcategoryRequest) []domain.Subcategory {
	subs := make([]domain.Subcategory, len(reqs))
	for i, req := range reqs {
		subs[i] = domain.Subcategory{
			ID:          req.ID,
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
		}
	}
	return subs
}
