package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
)

// FulfillmentPolicy decides how a requested quantity is matched against the
// variant's available stock.
type FulfillmentPolicy int

const (
	// PolicyStrict rejects the whole line when available stock is short of
	// the requested quantity. Default for explicit-items placement.
	PolicyStrict FulfillmentPolicy = iota

	// PolicyClamped fulfills min(requested, available) and reports the
	// shortfall as a rejected remainder. Used for cart-sourced placement.
	PolicyClamped
)

// RejectReason tags why a requested line could not be fulfilled.
type RejectReason string

const (
	RejectProductNotFound   RejectReason = "product_not_found"
	RejectVariantNotFound   RejectReason = "variant_not_found"
	RejectInsufficientStock RejectReason = "insufficient_stock"
	RejectSoldOut           RejectReason = "sold_out"
	RejectLookupFailed      RejectReason = "lookup_failed"
)

// RejectedItem is a requested line (or the unfulfilled remainder of one,
// under the clamped policy) that could not be reserved.
type RejectedItem struct {
	Item   models.OrderItem `json:"item"`
	Reason RejectReason     `json:"reason"`
}

// PlacementResult carries the created order and the lines that were not
// fulfillable.
type PlacementResult struct {
	Order    *models.Order  `json:"order"`
	Rejected []RejectedItem `json:"rejected"`
}

// AdjustOutcome tags the result of one best-effort variant stock adjustment
// on a cancellation boundary.
type AdjustOutcome string

const (
	OutcomeAdjusted         AdjustOutcome = "adjusted"
	OutcomeSkippedNoProduct AdjustOutcome = "skipped_no_product"
	OutcomeSkippedNoVariant AdjustOutcome = "skipped_no_variant"
	OutcomeSkippedError     AdjustOutcome = "skipped_error"
)

// StockAdjustment records one per-line restock or re-decrement attempt.
type StockAdjustment struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Size      string             `json:"size"`
	Color     string             `json:"color"`
	Delta     int                `json:"delta"`
	Outcome   AdjustOutcome      `json:"outcome"`
}

// TransitionResult carries the order after a status change together with the
// per-line stock adjustments the transition triggered.
type TransitionResult struct {
	Order       *models.Order     `json:"order"`
	Adjustments []StockAdjustment `json:"adjustments,omitempty"`
}

// ShippingInfo is the delivery part of a placement request.
type ShippingInfo struct {
	Address       string
	Phone         string
	PaymentMethod string
	Shipping      float64
}

// OrderService is the order placement and inventory reconciliation engine.
// It validates a proposed purchase against live variant stock, reserves that
// stock, persists the order, and reverses or re-applies the reservations when
// the order crosses the cancelled boundary.
type OrderService struct {
	catalog CatalogStore
	orders  OrderStore
	carts   CartStore
}

// NewOrderService wires the engine to its stores.
func NewOrderService(catalog CatalogStore, orders OrderStore, carts CartStore) *OrderService {
	return &OrderService{catalog: catalog, orders: orders, carts: carts}
}

// PlaceOrder creates an order from an explicit item list under the strict
// policy: a line short on stock is rejected whole. The user's cart, if any,
// is cleared after a successful placement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, items []models.OrderItem, ship ShippingInfo) (*PlacementResult, error) {
	if userID == "" || len(items) == 0 {
		return nil, fmt.Errorf("%w: userId and items required", ErrInvalidRequest)
	}
	for _, it := range items {
		if it.Qty <= 0 {
			return nil, fmt.Errorf("%w: item qty must be positive", ErrInvalidRequest)
		}
	}

	fulfilled, rejected := s.fulfill(ctx, items, PolicyStrict)
	order, err := s.createOrder(ctx, userID, fulfilled, rejected, ship)
	if err != nil {
		return nil, err
	}

	if err := s.carts.DeleteCartByUser(ctx, userID); err != nil {
		log.Printf("placeOrder: clearing cart for user %s: %v", userID, err)
	}
	return &PlacementResult{Order: order, Rejected: rejected}, nil
}

// PlaceOrderFromCart creates an order from the user's current cart under the
// clamped policy: each line fulfills min(requested, available) and reports
// the shortfall. Only rejected lines (including shortfall remainders) stay in
// the cart so the user can retry or remove them.
func (s *OrderService) PlaceOrderFromCart(ctx context.Context, userID string, ship ShippingInfo) (*PlacementResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId required", ErrInvalidRequest)
	}

	cart, err := s.carts.FindCartByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidRequest)
	}

	requested := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		requested = append(requested, models.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Price:     ci.Price,
			Qty:       ci.Qty,
			Size:      ci.Size,
			Color:     ci.Color,
			ImageURL:  ci.ImageURL,
			BouquetID: ci.BouquetID,
		})
	}

	fulfilled, rejected := s.fulfill(ctx, requested, PolicyClamped)
	order, err := s.createOrder(ctx, userID, fulfilled, rejected, ship)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.CartItem, 0, len(rejected))
	for _, r := range rejected {
		remaining = append(remaining, models.CartItem{
			ProductID: r.Item.ProductID,
			Name:      r.Item.Name,
			Price:     r.Item.Price,
			Qty:       r.Item.Qty,
			Size:      r.Item.Size,
			Color:     r.Item.Color,
			ImageURL:  r.Item.ImageURL,
			BouquetID: r.Item.BouquetID,
		})
	}
	cart.Items = remaining
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		log.Printf("placeOrderFromCart: saving cart for user %s: %v", userID, err)
	}

	return &PlacementResult{Order: order, Rejected: rejected}, nil
}

// fulfill walks the requested lines in order and tries to reserve stock for
// each one independently. A line that cannot be fulfilled is tagged and
// skipped; it never aborts the other lines. Decrements are sequential and
// per-item: lines reserved before a later failure stay reserved.
func (s *OrderService) fulfill(ctx context.Context, items []models.OrderItem, policy FulfillmentPolicy) ([]models.OrderItem, []RejectedItem) {
	var fulfilled []models.OrderItem
	var rejected []RejectedItem

	for _, item := range items {
		if item.ProductID.IsZero() {
			rejected = append(rejected, RejectedItem{Item: item, Reason: RejectProductNotFound})
			continue
		}

		product, err := s.catalog.FindProductByID(ctx, item.ProductID)
		if err != nil {
			log.Printf("fulfill: looking up product %s: %v", item.ProductID.Hex(), err)
			rejected = append(rejected, RejectedItem{Item: item, Reason: RejectLookupFailed})
			continue
		}
		if product == nil {
			rejected = append(rejected, RejectedItem{Item: item, Reason: RejectProductNotFound})
			continue
		}

		idx := product.FindVariant(item.Size, item.Color)
		if idx < 0 {
			rejected = append(rejected, RejectedItem{Item: item, Reason: RejectVariantNotFound})
			continue
		}
		available := product.Variants[idx].Qty

		want := item.Qty
		if policy == PolicyClamped {
			if available <= 0 {
				rejected = append(rejected, RejectedItem{Item: item, Reason: RejectSoldOut})
				continue
			}
			if want > available {
				want = available
			}
		} else if available < want {
			rejected = append(rejected, RejectedItem{Item: item, Reason: RejectInsufficientStock})
			continue
		}

		applied, err := s.catalog.DecrementVariantQty(ctx, item.ProductID, item.Size, item.Color, want)
		if err != nil {
			log.Printf("fulfill: decrementing %s (%s/%s): %v", item.ProductID.Hex(), item.Size, item.Color, err)
			rejected = append(rejected, RejectedItem{Item: item, Reason: RejectLookupFailed})
			continue
		}
		if !applied {
			// Stock moved between the read and the conditional decrement.
			rejected = append(rejected, RejectedItem{Item: item, Reason: RejectInsufficientStock})
			continue
		}

		line := item
		line.Qty = want
		fulfilled = append(fulfilled, line)

		if shortfall := item.Qty - want; shortfall > 0 {
			remainder := item
			remainder.Qty = shortfall
			rejected = append(rejected, RejectedItem{Item: remainder, Reason: RejectInsufficientStock})
		}
	}
	return fulfilled, rejected
}

// createOrder persists the fulfilled portion as a new pending order. With
// nothing fulfilled it fails instead; decrements already applied to other
// lines are not rolled back.
func (s *OrderService) createOrder(ctx context.Context, userID string, fulfilled []models.OrderItem, rejected []RejectedItem, ship ShippingInfo) (*models.Order, error) {
	if len(fulfilled) == 0 {
		if len(rejected) > 0 && allStockRejections(rejected) {
			return nil, ErrInsufficientStock
		}
		return nil, ErrNothingFulfillable
	}

	subtotal := 0.0
	for _, item := range fulfilled {
		subtotal += item.Price * float64(item.Qty)
	}

	paymentMethod := ship.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "COD"
	}

	order := &models.Order{
		UserID:        userID,
		Items:         fulfilled,
		Subtotal:      subtotal,
		Shipping:      ship.Shipping,
		Total:         subtotal + ship.Shipping,
		Address:       ship.Address,
		Phone:         ship.Phone,
		PaymentMethod: paymentMethod,
		Status:        models.StatusPending,
	}
	created, err := s.orders.InsertOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return created, nil
}

func allStockRejections(rejected []RejectedItem) bool {
	for _, r := range rejected {
		if r.Reason != RejectInsufficientStock && r.Reason != RejectSoldOut {
			return false
		}
	}
	return true
}

// SetOrderStatus moves an order to newStatus. Setting the current status is a
// no-op. Entering cancelled restocks every line; leaving cancelled
// re-decrements every line with a floor of zero. Per-line adjustment failures
// are tagged on the result, never fatal to the transition.
func (s *OrderService) SetOrderStatus(ctx context.Context, orderID primitive.ObjectID, newStatus models.OrderStatus, actor string) (*TransitionResult, error) {
	if !models.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, newStatus)
	}

	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID.Hex())
	}

	if order.Status == newStatus {
		return &TransitionResult{Order: order}, nil
	}

	var adjustments []StockAdjustment
	switch {
	case newStatus == models.StatusCancelled:
		adjustments = s.adjustItems(ctx, order.Items, +1)
	case order.Status == models.StatusCancelled:
		adjustments = s.adjustItems(ctx, order.Items, -1)
	}

	if actor == "" {
		actor = "system"
	}
	change := models.StatusChange{Status: newStatus, ChangedBy: actor, ChangedAt: time.Now()}
	updated, err := s.orders.UpdateOrderStatus(ctx, orderID, newStatus, change)
	if err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID.Hex())
	}
	return &TransitionResult{Order: updated, Adjustments: adjustments}, nil
}

// CancelOwnOrder lets a user cancel their own order while it is still
// pending. Every line is restocked, then the order is marked cancelled.
func (s *OrderService) CancelOwnOrder(ctx context.Context, orderID primitive.ObjectID, userID string) (*TransitionResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId required", ErrInvalidRequest)
	}

	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID.Hex())
	}
	if order.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: only pending orders can be cancelled", ErrInvalidTransition)
	}

	adjustments := s.adjustItems(ctx, order.Items, +1)

	change := models.StatusChange{Status: models.StatusCancelled, ChangedBy: userID, ChangedAt: time.Now()}
	updated, err := s.orders.UpdateOrderStatus(ctx, orderID, models.StatusCancelled, change)
	if err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID.Hex())
	}
	return &TransitionResult{Order: updated, Adjustments: adjustments}, nil
}

// adjustItems applies sign*qty to every line's variant, best-effort.
func (s *OrderService) adjustItems(ctx context.Context, items []models.OrderItem, sign int) []StockAdjustment {
	adjustments := make([]StockAdjustment, 0, len(items))
	for _, item := range items {
		adjustments = append(adjustments, s.adjustVariant(ctx, item.ProductID, item.Size, item.Color, sign*item.Qty))
	}
	return adjustments
}

// adjustVariant adds delta to the matching variant's qty, flooring at zero.
// A missing product or variant is skipped, not an error: the catalog may have
// changed since the order was placed.
func (s *OrderService) adjustVariant(ctx context.Context, productID primitive.ObjectID, size, color string, delta int) StockAdjustment {
	adj := StockAdjustment{ProductID: productID, Size: size, Color: color, Delta: delta}

	if productID.IsZero() {
		adj.Outcome = OutcomeSkippedNoProduct
		return adj
	}
	product, err := s.catalog.FindProductByID(ctx, productID)
	if err != nil {
		log.Printf("adjustVariant: looking up product %s: %v", productID.Hex(), err)
		adj.Outcome = OutcomeSkippedError
		return adj
	}
	if product == nil {
		adj.Outcome = OutcomeSkippedNoProduct
		return adj
	}

	idx := product.FindVariant(size, color)
	if idx < 0 {
		adj.Outcome = OutcomeSkippedNoVariant
		return adj
	}

	qty := product.Variants[idx].Qty + delta
	if qty < 0 {
		qty = 0
	}
	product.Variants[idx].Qty = qty

	if err := s.catalog.SaveProduct(ctx, product); err != nil {
		log.Printf("adjustVariant: saving product %s: %v", productID.Hex(), err)
		adj.Outcome = OutcomeSkippedError
		return adj
	}
	adj.Outcome = OutcomeAdjusted
	return adj
}
