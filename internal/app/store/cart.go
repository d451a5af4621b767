package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/yaxyebile/admin/internal/domain"
	"github.com/yaxyebile/admin/internal/infrastructure/cartstorage"
)

// cartBlobVersion guards the persisted schema. Bump it when the envelope
// shape changes; older gateways will then restore an empty cart instead of
// deserializing garbage.
const cartBlobVersion = 1

type cartEnvelope struct {
	Version int               `json:"version"`
	Items   []domain.CartItem `json:"items"`
}

// CartStore holds the shopper's line items and the locally known orders.
// Every mutation writes the full serialized cart through to storage, and a
// new store restores from the same key, so the cart survives restarts.
type CartStore struct {
	mu     sync.Mutex
	items  []domain.CartItem
	orders []domain.Order

	backend domain.OrderBackend
	storage cartstorage.Storage
	guard   *inflightGuard
	tracer  trace.Tracer
	logger  *slog.Logger

	checkouts metric.Int64Counter
}

// NewCartStore creates an empty cart store. Call Restore to load the
// persisted cart.
func NewCartStore(
	backend domain.OrderBackend,
	storage cartstorage.Storage,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartStore {
	checkouts, _ := meter.Int64Counter(
		"cart.checkouts",
		metric.WithDescription("Total number of checkout attempts by result"),
	)

	return &CartStore{
		backend:   backend,
		storage:   storage,
		guard:     newInflightGuard(),
		tracer:    tracer,
		logger:    logger,
		checkouts: checkouts,
	}
}

// Restore loads the persisted cart blob. A missing blob starts an empty
// cart; an unknown schema version is discarded with a warning.
func (s *CartStore) Restore(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartStore.Restore")
	defer span.End()

	data, err := s.storage.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load cart blob")
		return err
	}
	if data == nil {
		span.SetStatus(codes.Ok, "No persisted cart")
		return nil
	}

	var envelope cartEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Corrupt cart blob")
		return fmt.Errorf("decode cart blob: %w", err)
	}
	if envelope.Version != cartBlobVersion {
		s.logger.WarnContext(ctx, "Discarding cart blob with unknown schema version",
			slog.Int("version", envelope.Version),
			slog.Int("supported", cartBlobVersion),
		)
		span.SetStatus(codes.Ok, "Unknown cart schema discarded")
		return nil
	}

	s.mu.Lock()
	s.items = envelope.Items
	s.mu.Unlock()

	span.SetAttributes(attribute.Int("cart.item_count", len(envelope.Items)))
	s.logger.InfoContext(ctx, "Cart restored",
		slog.Int("items", len(envelope.Items)),
	)

	span.SetStatus(codes.Ok, "Cart restored")
	return nil
}

// persistLocked writes the whole cart through to storage. Callers must hold
// the mutex.
func (s *CartStore) persistLocked(ctx context.Context) error {
	envelope := cartEnvelope{Version: cartBlobVersion, Items: s.items}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode cart blob: %w", err)
	}
	return s.storage.Save(ctx, data)
}

// commitLocked persists the given items and swaps them in only after the
// write succeeds, so a storage failure leaves the in-memory cart and the
// blob agreeing. Callers must hold the mutex.
func (s *CartStore) commitLocked(ctx context.Context, items []domain.CartItem) error {
	envelope := cartEnvelope{Version: cartBlobVersion, Items: items}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode cart blob: %w", err)
	}
	if err := s.storage.Save(ctx, data); err != nil {
		return err
	}
	s.items = items
	return nil
}

// AddToCart merges the quantity into an existing line item for the same
// product ID, or appends a new line item
func (s *CartStore) AddToCart(ctx context.Context, product domain.Product, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)

	merged := false
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{Product: product, Quantity: quantity})
	}

	if err := s.commitLocked(ctx, items); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "Cart item added",
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
	)
	return nil
}

// RemoveFromCart drops the line item for the product ID; removing an absent
// item is a no-op
func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.CartItem, 0, len(s.items))
	removed := false
	for _, item := range s.items {
		if item.Product.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil
	}

	return s.commitLocked(ctx, kept)
}

// UpdateQuantity sets the line item quantity to exactly the given value.
// Non-positive quantities remove the item; an absent product is a no-op.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)

	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			return s.commitLocked(ctx, items)
		}
	}
	return nil
}

// ClearCart empties all line items
func (s *CartStore) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitLocked(ctx, nil)
}

// Items returns a snapshot of the current line items
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalPrice sums price times quantity over all line items, rounded to two
// decimal places
func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *CartStore) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// TotalItems sums the quantities over all line items
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// CheckoutCart derives an order from the current line items and computed
// total, submits it, and removes the ordered quantities once the backend
// confirms. The created order is appended to the local orders list.
func (s *CartStore) CheckoutCart(ctx context.Context, userID string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CartStore.CheckoutCart")
	defer span.End()
	span.SetAttributes(attribute.String("order.user_id", userID))

	if userID == "" {
		return domain.Order{}, domain.ErrMissingOrderUser
	}

	if err := s.guard.begin("cart.checkout", userID); err != nil {
		return domain.Order{}, err
	}
	defer s.guard.end("cart.checkout", userID)

	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		span.SetStatus(codes.Error, "Cart is empty")
		return domain.Order{}, domain.ErrEmptyCart
	}
	items := make([]domain.OrderItem, len(s.items))
	ordered := make(map[string]int, len(s.items))
	for i, item := range s.items {
		items[i] = domain.OrderItem{ProductID: item.Product.ID, Quantity: item.Quantity}
		ordered[item.Product.ID] = item.Quantity
	}
	order := domain.Order{
		UserID: userID,
		Items:  items,
		Total:  s.totalLocked(),
	}
	s.mu.Unlock()

	created, err := s.backend.CreateOrder(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend order creation failed")
		s.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "failure")))
		return domain.Order{}, err
	}

	// Remove only the quantities that went into the order. The mutex was
	// released during the backend round-trip, so line items added or grown
	// in the meantime were never submitted and must stay in the cart.
	s.mu.Lock()
	s.orders = append(s.orders, created)
	kept := make([]domain.CartItem, 0, len(s.items))
	for _, item := range s.items {
		if remaining := item.Quantity - ordered[item.Product.ID]; remaining > 0 {
			item.Quantity = remaining
			kept = append(kept, item)
		}
	}
	s.items = kept
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		// The order exists remotely; losing the cleared-cart write is the
		// lesser problem. Log and report success.
		s.logger.WarnContext(ctx, "Failed to persist cleared cart after checkout",
			slog.String("error", persistErr.Error()),
		)
	}

	s.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "success")))
	s.logger.InfoContext(ctx, "Checkout completed",
		slog.String("order_id", created.ID),
		slog.String("user_id", userID),
	)

	span.SetAttributes(attribute.String("order.id", created.ID))
	span.SetStatus(codes.Ok, "Checkout completed")
	return created, nil
}

// SubmitOrder submits a caller-formed order and appends the created order to
// the local orders list. The cart's line items are never touched.
func (s *CartStore) SubmitOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CartStore.SubmitOrder")
	defer span.End()

	if err := order.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		return domain.Order{}, err
	}

	created, err := s.backend.CreateOrder(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend order creation failed")
		return domain.Order{}, err
	}

	s.mu.Lock()
	s.orders = append(s.orders, created)
	s.mu.Unlock()

	span.SetAttributes(attribute.String("order.id", created.ID))
	span.SetStatus(codes.Ok, "Order submitted")
	return created, nil
}

// FetchOrders replaces the local orders list with the backend's full list
func (s *CartStore) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CartStore.FetchOrders")
	defer span.End()

	orders, err := s.backend.FetchOrders(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch orders")
		return nil, err
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	span.SetStatus(codes.Ok, "Orders fetched")
	return orders, nil
}

// FetchUserOrders retrieves one user's orders without touching the local
// orders list
func (s *CartStore) FetchUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.backend.FetchUserOrders(ctx, userID)
}

// UpdateOrderStatus transitions an order remotely and reconciles the local
// copy when present
func (s *CartStore) UpdateOrderStatus(ctx context.Context, id, status string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CartStore.UpdateOrderStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", id),
		attribute.String("order.status", status),
	)

	updated, err := s.backend.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend status update failed")
		return domain.Order{}, err
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i] = updated
			break
		}
	}
	s.mu.Unlock()

	span.SetStatus(codes.Ok, "Order status updated")
	return updated, nil
}

// Orders returns a snapshot of the locally known orders
func (s *CartStore) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}
