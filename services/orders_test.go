package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
)

func testProduct(qty int) *models.Product {
	return &models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Rose Bouquet",
		Price: 25,
		Variants: []models.Variant{
			{Color: "Red", Size: "M", Qty: qty},
		},
	}
}

func requestedItem(p *models.Product, qty int) models.OrderItem {
	return models.OrderItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Qty:       qty,
		Size:      "M",
		Color:     "Red",
	}
}

func newTestService(catalog *fakeCatalog, orders *fakeOrders, carts *fakeCarts) *OrderService {
	return NewOrderService(catalog, orders, carts)
}

func TestPlaceOrderStrictDecrementsVariant(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	orders := newFakeOrders()
	carts := newFakeCarts()
	svc := newTestService(catalog, orders, carts)

	result, err := svc.PlaceOrder(context.Background(), "user-1",
		[]models.OrderItem{requestedItem(p, 3)},
		ShippingInfo{Address: "12 Garden St", PaymentMethod: "COD"})
	require.NoError(t, err)
	require.NotNil(t, result.Order)

	assert.Equal(t, 2, catalog.variantQty(p.ID, "M", "Red"))
	assert.Equal(t, models.StatusPending, result.Order.Status)
	assert.Equal(t, 75.0, result.Order.Subtotal)
	assert.Equal(t, 75.0, result.Order.Total)
	assert.Equal(t, "COD", result.Order.PaymentMethod)
	assert.Empty(t, result.Rejected)
}

func TestPlaceOrderStrictInsufficientStock(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders, newFakeCarts())

	_, err := svc.PlaceOrder(context.Background(), "user-1",
		[]models.OrderItem{requestedItem(p, 10)}, ShippingInfo{})
	require.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, 5, catalog.variantQty(p.ID, "M", "Red"), "stock must be untouched")
	assert.Empty(t, orders.orders, "no order may be created")
}

func TestPlaceOrderRejectsInvalidRequests(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "", []models.OrderItem{requestedItem(p, 1)}, ShippingInfo{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.PlaceOrder(ctx, "user-1", nil, ShippingInfo{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.PlaceOrder(ctx, "user-1", []models.OrderItem{requestedItem(p, 0)}, ShippingInfo{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Equal(t, 5, catalog.variantQty(p.ID, "M", "Red"), "validation failures leave no side effects")
}

func TestPlaceOrderSkipsUnfulfillableLines(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders, newFakeCarts())

	missing := models.OrderItem{ProductID: primitive.NewObjectID(), Name: "Gone", Price: 10, Qty: 1, Size: "M", Color: "Red"}
	noVariant := requestedItem(p, 1)
	noVariant.Color = "Blue"

	result, err := svc.PlaceOrder(context.Background(), "user-1",
		[]models.OrderItem{missing, noVariant, requestedItem(p, 2)}, ShippingInfo{})
	require.NoError(t, err)

	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, 2, result.Order.Items[0].Qty)
	assert.Equal(t, 50.0, result.Order.Subtotal)
	assert.Equal(t, 3, catalog.variantQty(p.ID, "M", "Red"))

	require.Len(t, result.Rejected, 2)
	assert.Equal(t, RejectProductNotFound, result.Rejected[0].Reason)
	assert.Equal(t, RejectVariantNotFound, result.Rejected[1].Reason)
}

func TestPlaceOrderNothingFulfillable(t *testing.T) {
	catalog := newFakeCatalog()
	orders := newFakeOrders()
	svc := newTestService(catalog, orders, newFakeCarts())

	missing := models.OrderItem{ProductID: primitive.NewObjectID(), Name: "Gone", Price: 10, Qty: 1, Size: "M", Color: "Red"}
	_, err := svc.PlaceOrder(context.Background(), "user-1", []models.OrderItem{missing}, ShippingInfo{})
	require.ErrorIs(t, err, ErrNothingFulfillable)
	assert.Empty(t, orders.orders)
}

func TestPlaceOrderLookupFailureIsLocal(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	catalog.findErr = errStoreDown
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())

	_, err := svc.PlaceOrder(context.Background(), "user-1",
		[]models.OrderItem{requestedItem(p, 1)}, ShippingInfo{})
	require.ErrorIs(t, err, ErrNothingFulfillable, "lookup failure marks the line rejected, not a server fault")
}

func TestPlaceOrderClearsCart(t *testing.T) {
	p := testProduct(5)
	carts := newFakeCarts(&models.Cart{UserID: "user-1", Items: []models.CartItem{{Name: "x", Qty: 1}}})
	svc := newTestService(newFakeCatalog(p), newFakeOrders(), carts)

	_, err := svc.PlaceOrder(context.Background(), "user-1",
		[]models.OrderItem{requestedItem(p, 1)}, ShippingInfo{})
	require.NoError(t, err)

	_, ok := carts.carts["user-1"]
	assert.False(t, ok, "explicit placement clears the whole cart")
}

func TestPlaceOrderFromCartClampsToAvailable(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	carts := newFakeCarts(&models.Cart{
		ID:     primitive.NewObjectID(),
		UserID: "user-1",
		Items: []models.CartItem{{
			ProductID: p.ID, Name: p.Name, Price: p.Price, Qty: 10, Size: "M", Color: "Red",
		}},
	})
	svc := newTestService(catalog, newFakeOrders(), carts)

	result, err := svc.PlaceOrderFromCart(context.Background(), "user-1", ShippingInfo{})
	require.NoError(t, err)

	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, 5, result.Order.Items[0].Qty, "fulfills min(requested, available)")
	assert.Equal(t, 125.0, result.Order.Subtotal)
	assert.Equal(t, 0, catalog.variantQty(p.ID, "M", "Red"))

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, RejectInsufficientStock, result.Rejected[0].Reason)
	assert.Equal(t, 5, result.Rejected[0].Item.Qty, "shortfall is reported")

	cart := carts.carts["user-1"]
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Qty, "only the fulfilled portion leaves the cart")
}

func TestPlaceOrderFromCartSoldOutLineStays(t *testing.T) {
	inStock := testProduct(3)
	soldOut := &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Tulip Mix",
		Price:    18,
		Variants: []models.Variant{{Color: "White", Size: "S", Qty: 0}},
	}
	catalog := newFakeCatalog(inStock, soldOut)
	carts := newFakeCarts(&models.Cart{
		ID:     primitive.NewObjectID(),
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: inStock.ID, Name: inStock.Name, Price: inStock.Price, Qty: 2, Size: "M", Color: "Red"},
			{ProductID: soldOut.ID, Name: soldOut.Name, Price: soldOut.Price, Qty: 1, Size: "S", Color: "White"},
		},
	})
	svc := newTestService(catalog, newFakeOrders(), carts)

	result, err := svc.PlaceOrderFromCart(context.Background(), "user-1", ShippingInfo{})
	require.NoError(t, err)

	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, inStock.Name, result.Order.Items[0].Name)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, RejectSoldOut, result.Rejected[0].Reason)

	cart := carts.carts["user-1"]
	require.Len(t, cart.Items, 1)
	assert.Equal(t, soldOut.Name, cart.Items[0].Name, "sold-out line stays in the cart")
}

func TestPlaceOrderFromCartEmptyCart(t *testing.T) {
	svc := newTestService(newFakeCatalog(), newFakeOrders(), newFakeCarts())
	_, err := svc.PlaceOrderFromCart(context.Background(), "user-1", ShippingInfo{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func placedOrder(t *testing.T, svc *OrderService, catalog *fakeCatalog, p *models.Product, qty int) *models.Order {
	t.Helper()
	result, err := svc.PlaceOrder(context.Background(), "user-1",
		[]models.OrderItem{requestedItem(p, qty)}, ShippingInfo{})
	require.NoError(t, err)
	return result.Order
}

func TestSetOrderStatusSameStatusIsNoOp(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders, newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)

	result, err := svc.SetOrderStatus(context.Background(), order.ID, models.StatusPending, "admin")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, result.Order.Status)
	assert.Empty(t, result.Adjustments, "no stock mutation on a no-op")
	assert.Empty(t, result.Order.StatusHistory, "no audit entry on a no-op")
	assert.Equal(t, 2, catalog.variantQty(p.ID, "M", "Red"))
}

func TestSetOrderStatusCancelRestocksEachLine(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)

	result, err := svc.SetOrderStatus(context.Background(), order.ID, models.StatusCancelled, "admin")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, result.Order.Status)
	assert.Equal(t, 5, catalog.variantQty(p.ID, "M", "Red"), "cancellation restores the decrement")
	require.Len(t, result.Adjustments, 1)
	assert.Equal(t, OutcomeAdjusted, result.Adjustments[0].Outcome)
	assert.Equal(t, 3, result.Adjustments[0].Delta)
	require.Len(t, result.Order.StatusHistory, 1)
	assert.Equal(t, "admin", result.Order.StatusHistory[0].ChangedBy)
}

func TestSetOrderStatusLeavingCancelledReDecrements(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3) // qty 2

	_, err := svc.SetOrderStatus(context.Background(), order.ID, models.StatusCancelled, "admin")
	require.NoError(t, err) // qty 5

	result, err := svc.SetOrderStatus(context.Background(), order.ID, models.StatusConfirmed, "admin")
	require.NoError(t, err)

	assert.Equal(t, 2, catalog.variantQty(p.ID, "M", "Red"), "reactivation re-applies the decrement")
	require.Len(t, result.Adjustments, 1)
	assert.Equal(t, -3, result.Adjustments[0].Delta)
}

func TestSetOrderStatusRoundTripRestoresStock(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)
	ctx := context.Background()

	_, err := svc.SetOrderStatus(ctx, order.ID, models.StatusCancelled, "admin")
	require.NoError(t, err)
	afterFirstCancel := catalog.variantQty(p.ID, "M", "Red")

	_, err = svc.SetOrderStatus(ctx, order.ID, models.StatusConfirmed, "admin")
	require.NoError(t, err)
	_, err = svc.SetOrderStatus(ctx, order.ID, models.StatusCancelled, "admin")
	require.NoError(t, err)

	assert.Equal(t, afterFirstCancel, catalog.variantQty(p.ID, "M", "Red"),
		"cancel/confirm/cancel nets to the first cancellation's stock level")
}

func TestSetOrderStatusReDecrementFloorsAtZero(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)
	ctx := context.Background()

	_, err := svc.SetOrderStatus(ctx, order.ID, models.StatusCancelled, "admin")
	require.NoError(t, err)

	// A catalog edit shrinks stock below the reversal amount.
	stored := catalog.products[p.ID]
	stored.Variants[0].Qty = 1

	result, err := svc.SetOrderStatus(ctx, order.ID, models.StatusShipped, "admin")
	require.NoError(t, err)

	assert.Equal(t, 0, catalog.variantQty(p.ID, "M", "Red"), "re-decrement never goes negative")
	assert.Equal(t, OutcomeAdjusted, result.Adjustments[0].Outcome)
}

func TestSetOrderStatusCancelSkipsVanishedProduct(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)

	delete(catalog.products, p.ID)

	result, err := svc.SetOrderStatus(context.Background(), order.ID, models.StatusCancelled, "admin")
	require.NoError(t, err, "a vanished product never fails the transition")
	assert.Equal(t, models.StatusCancelled, result.Order.Status)
	require.Len(t, result.Adjustments, 1)
	assert.Equal(t, OutcomeSkippedNoProduct, result.Adjustments[0].Outcome)
}

func TestSetOrderStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeCatalog(), newFakeOrders(), newFakeCarts())
	_, err := svc.SetOrderStatus(context.Background(), primitive.NewObjectID(), "refunded", "admin")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSetOrderStatusMissingOrder(t *testing.T) {
	svc := newTestService(newFakeCatalog(), newFakeOrders(), newFakeCarts())
	_, err := svc.SetOrderStatus(context.Background(), primitive.NewObjectID(), models.StatusConfirmed, "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOwnOrderPending(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)

	result, err := svc.CancelOwnOrder(context.Background(), order.ID, "user-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, result.Order.Status)
	assert.Equal(t, 5, catalog.variantQty(p.ID, "M", "Red"))
	require.Len(t, result.Order.StatusHistory, 1)
	assert.Equal(t, "user-1", result.Order.StatusHistory[0].ChangedBy)
}

func TestCancelOwnOrderNotPending(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)
	ctx := context.Background()

	_, err := svc.SetOrderStatus(ctx, order.ID, models.StatusConfirmed, "admin")
	require.NoError(t, err)

	_, err = svc.CancelOwnOrder(ctx, order.ID, "user-1")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 2, catalog.variantQty(p.ID, "M", "Red"), "failed cancel leaves stock alone")
}

func TestCancelOwnOrderWrongUser(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	svc := newTestService(catalog, newFakeOrders(), newFakeCarts())
	order := placedOrder(t, svc, catalog, p, 3)

	_, err := svc.CancelOwnOrder(context.Background(), order.ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)
}
