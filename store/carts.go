package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"elvastore-api/models"
)

// Carts is the Mongo-backed cart store.
type Carts struct {
	coll *mongo.Collection
}

// NewCarts creates a Carts repository over the given database.
func NewCarts(db *mongo.Database) *Carts {
	return &Carts{coll: db.Collection("carts")}
}

// FindCartByUser returns the user's cart, or (nil, nil) when none exists.
func (c *Carts) FindCartByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := c.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveCart inserts or replaces the user's cart document.
func (c *Carts) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	if cart.ID.IsZero() {
		result, err := c.coll.InsertOne(ctx, cart)
		if err != nil {
			return err
		}
		cart.ID = result.InsertedID.(primitive.ObjectID)
		return nil
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart)
	return err
}

// DeleteCartByUser removes the user's cart entirely.
func (c *Carts) DeleteCartByUser(ctx context.Context, userID string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
