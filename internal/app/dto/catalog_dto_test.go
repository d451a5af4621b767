package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateProduct() CreateProductRequest {
	return CreateProductRequest{
		Name:     "Runner",
		Slug:     "runner",
		Category: "shoes",
		Price:    59.9,
		Stock:    10,
	}
}

func TestCreateProductRequestValidate(t *testing.T) {
	req := validCreateProduct()
	assert.NoError(t, req.Validate())

	req = validCreateProduct()
	req.Price = 0
	assert.NoError(t, req.Validate(), "free products are allowed")

	req = validCreateProduct()
	req.Name = ""
	err := req.Validate()
	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)

	req = validCreateProduct()
	req.Price = -1
	assert.Error(t, req.Validate())

	req = validCreateProduct()
	req.Stock = -5
	assert.Error(t, req.Validate())
}

func TestCreateProductRequestToDomain(t *testing.T) {
	req := validCreateProduct()
	product := req.ToDomain()

	assert.Empty(t, product.ID, "the backend assigns the ID")
	assert.Equal(t, "Runner", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("59.9")), "got %s", product.Price)
}

func TestUpdateProductRequestToPatch(t *testing.T) {
	price := 12.5
	req := UpdateProductRequest{Price: &price}
	require.NoError(t, req.Validate())

	patch := req.ToPatch()
	require.NotNil(t, patch.Price)
	assert.True(t, patch.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Stock)
}

func TestUpdateProductRequestRejectsNegativePrice(t *testing.T) {
	price := -3.0
	req := UpdateProductRequest{Price: &price}
	assert.Error(t, req.Validate())
}

func TestCreateCategoryRequestValidatesSubcategories(t *testing.T) {
	req := CreateCategoryRequest{
		Name: "Shoes",
		Slug: "shoes",
		Subcategories: []SubcategoryRequest{
			{Name: "Sneakers", Slug: "sneakers"},
		},
	}
	require.NoError(t, req.Validate())

	category := req.ToDomain()
	require.Len(t, category.Subcategories, 1)
	assert.Equal(t, "sneakers", category.Subcategories[0].Slug)

	req.Subcategories = append(req.Subcategories, SubcategoryRequest{Name: "Boots"})
	assert.Error(t, req.Validate(), "subcategories without a slug are rejected")
}

func TestSubmitOrderRequestValidate(t *testing.T) {
	req := SubmitOrderRequest{
		UserID: "u1",
		Items:  []OrderItemRequest{{ProductID: "p1", Quantity: 2}},
		Total:  40,
	}
	require.NoError(t, req.Validate())

	order := req.ToDomain()
	assert.Equal(t, "u1", order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(40)))

	req.Items = nil
	assert.Error(t, req.Validate())
}
