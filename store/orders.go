package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"elvastore-api/models"
)

// Orders is the Mongo-backed order store.
type Orders struct {
	coll *mongo.Collection
}

// NewOrders creates an Orders repository over the given database.
func NewOrders(db *mongo.Database) *Orders {
	return &Orders{coll: db.Collection("orders")}
}

// InsertOrder persists a new order and returns it with its assigned ID.
func (o *Orders) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	result, err := o.coll.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return order, nil
}

// FindOrderByID returns the order, or (nil, nil) when no such order exists.
func (o *Orders) FindOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := o.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderFilter narrows List results.
type OrderFilter struct {
	UserID string
	Status models.OrderStatus
}

// List returns orders matching the filter, newest first.
func (o *Orders) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := bson.M{}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}

	cursor, err := o.coll.Find(ctx, q, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets the status, appends the audit entry, and returns the
// updated order.
func (o *Orders) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, change models.StatusChange) (*models.Order, error) {
	update := bson.M{
		"$set":  bson.M{"status": status, "updated_at": time.Now()},
		"$push": bson.M{"status_history": change},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := o.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderAddress replaces the delivery address and phone on an order.
func (o *Orders) UpdateOrderAddress(ctx context.Context, id primitive.ObjectID, address, phone string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"address": address, "phone": phone, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := o.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
