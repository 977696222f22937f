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

// Catalog is the Mongo-backed product store. Every component that touches
// variant stock (placement, cancellation, restock, catalog edits) goes through
// this repository so variant mutations share the same update primitives.
type Catalog struct {
	coll *mongo.Collection
}

// NewCatalog creates a Catalog over the given database.
func NewCatalog(db *mongo.Database) *Catalog {
	return &Catalog{coll: db.Collection("products")}
}

// ProductFilter narrows List results.
type ProductFilter struct {
	Search   string
	Category string
	Featured bool
}

// FindProductByID returns the product, or (nil, nil) when no such product exists.
func (c *Catalog) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products matching the filter, newest first.
func (c *Catalog) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Featured {
		q["featured"] = true
	}
	if f.Search != "" {
		q["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	cursor, err := c.coll.Find(ctx, q, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Insert stores a new product and returns it with its assigned ID.
func (c *Catalog) Insert(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	result, err := c.coll.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return p, nil
}

// SaveProduct writes the product document back, replacing its current state.
func (c *Catalog) SaveProduct(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

// Delete removes a product. Placed orders keep their denormalized snapshots.
func (c *Catalog) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// DecrementVariantQty atomically decrements the matching variant's qty by qty,
// but only if the variant currently holds at least that much. The check runs
// server-side, so two concurrent placements cannot both pass it against the
// same stock. Returns whether the decrement was applied.
func (c *Catalog) DecrementVariantQty(ctx context.Context, id primitive.ObjectID, size, color string, qty int) (bool, error) {
	update := bson.M{"$inc": bson.M{"variants.$[v].qty": -qty}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{
			"v.size":  size,
			"v.color": color,
			"v.qty":   bson.M{"$gte": qty},
		}},
	})
	result, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, update, opts)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}
