package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
)

// In-memory stores backing the service tests. They copy documents on the way
// in and out so service code cannot alias store state, matching how a real
// driver behaves.

type fakeCatalog struct {
	products map[primitive.ObjectID]*models.Product
	findErr  error
	saveErr  error
}

func newFakeCatalog(products ...*models.Product) *fakeCatalog {
	fc := &fakeCatalog{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		fc.products[p.ID] = copyProduct(p)
	}
	return fc
}

func copyProduct(p *models.Product) *models.Product {
	cp := *p
	cp.Variants = append([]models.Variant(nil), p.Variants...)
	return &cp
}

func (fc *fakeCatalog) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if fc.findErr != nil {
		return nil, fc.findErr
	}
	p, ok := fc.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (fc *fakeCatalog) SaveProduct(ctx context.Context, p *models.Product) error {
	if fc.saveErr != nil {
		return fc.saveErr
	}
	fc.products[p.ID] = copyProduct(p)
	return nil
}

func (fc *fakeCatalog) DecrementVariantQty(ctx context.Context, id primitive.ObjectID, size, color string, qty int) (bool, error) {
	p, ok := fc.products[id]
	if !ok {
		return false, nil
	}
	idx := p.FindVariant(size, color)
	if idx < 0 || p.Variants[idx].Qty < qty {
		return false, nil
	}
	p.Variants[idx].Qty -= qty
	return true, nil
}

// variantQty reads the live stored qty for assertions.
func (fc *fakeCatalog) variantQty(id primitive.ObjectID, size, color string) int {
	p, ok := fc.products[id]
	if !ok {
		return -1
	}
	idx := p.FindVariant(size, color)
	if idx < 0 {
		return -1
	}
	return p.Variants[idx].Qty
}

type fakeOrders struct {
	orders    map[primitive.ObjectID]*models.Order
	insertErr error
}

func newFakeOrders(orders ...*models.Order) *fakeOrders {
	fo := &fakeOrders{orders: map[primitive.ObjectID]*models.Order{}}
	for _, o := range orders {
		fo.orders[o.ID] = copyOrder(o)
	}
	return fo
}

func copyOrder(o *models.Order) *models.Order {
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	cp.StatusHistory = append([]models.StatusChange(nil), o.StatusHistory...)
	return &cp
}

func (fo *fakeOrders) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if fo.insertErr != nil {
		return nil, fo.insertErr
	}
	order.ID = primitive.NewObjectID()
	fo.orders[order.ID] = copyOrder(order)
	return copyOrder(order), nil
}

func (fo *fakeOrders) FindOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := fo.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (fo *fakeOrders) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, change models.StatusChange) (*models.Order, error) {
	o, ok := fo.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, change)
	return copyOrder(o), nil
}

type fakeCarts struct {
	carts   map[string]*models.Cart
	saveErr error
}

func newFakeCarts(carts ...*models.Cart) *fakeCarts {
	fc := &fakeCarts{carts: map[string]*models.Cart{}}
	for _, c := range carts {
		fc.carts[c.UserID] = copyCart(c)
	}
	return fc
}

func copyCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp
}

func (fc *fakeCarts) FindCartByUser(ctx context.Context, userID string) (*models.Cart, error) {
	c, ok := fc.carts[userID]
	if !ok {
		return nil, nil
	}
	return copyCart(c), nil
}

func (fc *fakeCarts) SaveCart(ctx context.Context, cart *models.Cart) error {
	if fc.saveErr != nil {
		return fc.saveErr
	}
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	fc.carts[cart.UserID] = copyCart(cart)
	return nil
}

func (fc *fakeCarts) DeleteCartByUser(ctx context.Context, userID string) error {
	delete(fc.carts, userID)
	return nil
}

var errStoreDown = errors.New("store down")
