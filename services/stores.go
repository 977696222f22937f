package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
)

// CatalogStore is the product persistence the order engine depends on.
// Lookups return (nil, nil) when the product does not exist.
type CatalogStore interface {
	FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)

	// SaveProduct writes the whole product back. Used by the clamped
	// restock/re-decrement path, which must floor at zero rather than fail.
	SaveProduct(ctx context.Context, p *models.Product) error

	// DecrementVariantQty applies "decrement qty by n only if qty >= n" as a
	// single server-side operation and reports whether it was applied.
	DecrementVariantQty(ctx context.Context, id primitive.ObjectID, size, color string, qty int) (bool, error)
}

// OrderStore is the order persistence the engine depends on. Lookups return
// (nil, nil) when the order does not exist.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, change models.StatusChange) (*models.Order, error)
}

// CartStore is the cart persistence consumed by placement and the cart
// service. FindCartByUser returns (nil, nil) when the user has no cart.
type CartStore interface {
	FindCartByUser(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCartByUser(ctx context.Context, userID string) error
}
