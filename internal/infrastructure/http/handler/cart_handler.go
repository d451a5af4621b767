package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yaxyebile/admin/internal/app/dto"
	"github.com/yaxyebile/admin/internal/app/store"
	"github.com/yaxyebile/admin/internal/infrastructure/http/response"
)

// CartHandler handles HTTP requests for the cart and orders
type CartHandler struct {
	cart    *store.CartStore
	catalog *store.CatalogStore
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler. The catalog store resolves
// product references when items are added.
func NewCartHandler(cart *store.CartStore, catalog *store.CatalogStore, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, logger: logger}
}

func (h *CartHandler) cartResponse() dto.CartResponse {
	return dto.CartResponse{
		Items:      h.cart.Items(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.cartResponse())
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cart.AddToCart(r.Context(), product, req.Quantity); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.cartResponse())
}

// UpdateItem handles PUT /cart/items/{productID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req dto.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.cartResponse())
}

// RemoveItem handles DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.cart.RemoveFromCart(r.Context(), productID); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.cartResponse())
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.cartResponse())
}

// Checkout handles POST /cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.cart.CheckoutCart(r.Context(), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Order placed from cart",
		slog.String("order_id", order.ID),
		slog.String("user_id", req.UserID),
	)

	response.JSON(w, http.StatusCreated, order)
}

// SubmitOrder handles POST /orders with a fully caller-formed order
func (h *CartHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.cart.SubmitOrder(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /orders, refreshing the local list from the backend
func (h *CartHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.cart.FetchOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, orders)
}

// ListUserOrders handles GET /orders/user/{userID}
func (h *CartHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	orders, err := h.cart.FetchUserOrders(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus handles PATCH /orders/{id}/status
func (h *CartHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.cart.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}
