package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		Name:     "Runner",
		Slug:     "runner",
		Category: "shoes",
		Price:    decimal.NewFromInt(10),
		Stock:    5,
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr error
	}{
		{"valid", func(p *Product) {}, nil},
		{"zero price is allowed", func(p *Product) { p.Price = decimal.Zero }, nil},
		{"zero stock is allowed", func(p *Product) { p.Stock = 0 }, nil},
		{"missing name", func(p *Product) { p.Name = "" }, ErrInvalidProductName},
		{"missing slug", func(p *Product) { p.Slug = "" }, ErrInvalidProductSlug},
		{"missing category", func(p *Product) { p.Category = "" }, ErrMissingProductCategory},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }, ErrNegativeProductPrice},
		{"negative stock", func(p *Product) { p.Stock = -1 }, ErrNegativeProductStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tt.wantErr)
		})
	}
}

func TestCategoryValidate(t *testing.T) {
	c := Category{Name: "Shoes", Slug: "shoes"}
	assert.NoError(t, c.Validate())

	c.Name = ""
	assert.ErrorIs(t, c.Validate(), ErrInvalidCategoryName)

	c = Category{Name: "Shoes"}
	assert.ErrorIs(t, c.Validate(), ErrInvalidCategorySlug)
}

func TestOrderValidate(t *testing.T) {
	order := Order{
		UserID: "u1",
		Items:  []OrderItem{{ProductID: "p1", Quantity: 2}},
		Total:  decimal.NewFromInt(20),
	}
	assert.NoError(t, order.Validate())

	order.UserID = ""
	assert.ErrorIs(t, order.Validate(), ErrMissingOrderUser)

	order.UserID = "u1"
	order.Items = nil
	assert.ErrorIs(t, order.Validate(), ErrEmptyOrder)

	order.Items = []OrderItem{{ProductID: "p1", Quantity: 1}}
	order.Total = decimal.NewFromInt(-5)
	assert.ErrorIs(t, order.Validate(), ErrNegativeOrderTotal)
}

func TestOrderAlwaysCarriesCreatedAt(t *testing.T) {
	data, err := json.Marshal(Order{ID: "o1", UserID: "u1"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "createdAt", "the timestamp is part of the wire contract even when zero")
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{Product: Product{Price: decimal.RequireFromString("9.99")}, Quantity: 3}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("29.97")))
}
