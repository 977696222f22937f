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

// Bouquets holds the collections behind the custom-bouquet configurator:
// flowers, wraps, ribbons, templates, and assembled bouquets.
type Bouquets struct {
	flowers   *mongo.Collection
	wraps     *mongo.Collection
	ribbons   *mongo.Collection
	templates *mongo.Collection
	bouquets  *mongo.Collection
}

// NewBouquets creates a Bouquets repository over the given database.
func NewBouquets(db *mongo.Database) *Bouquets {
	return &Bouquets{
		flowers:   db.Collection("flowers"),
		wraps:     db.Collection("wraps"),
		ribbons:   db.Collection("ribbons"),
		templates: db.Collection("bouquet_templates"),
		bouquets:  db.Collection("custom_bouquets"),
	}
}

func (b *Bouquets) FindFlowerByID(ctx context.Context, id primitive.ObjectID) (*models.Flower, error) {
	var f models.Flower
	if err := decodeOne(b.flowers.FindOne(ctx, bson.M{"_id": id}), &f); err != nil {
		return nil, err
	}
	if f.ID.IsZero() {
		return nil, nil
	}
	return &f, nil
}

func (b *Bouquets) FindWrapByID(ctx context.Context, id primitive.ObjectID) (*models.Wrap, error) {
	var w models.Wrap
	if err := decodeOne(b.wraps.FindOne(ctx, bson.M{"_id": id}), &w); err != nil {
		return nil, err
	}
	if w.ID.IsZero() {
		return nil, nil
	}
	return &w, nil
}

func (b *Bouquets) FindRibbonByID(ctx context.Context, id primitive.ObjectID) (*models.Ribbon, error) {
	var r models.Ribbon
	if err := decodeOne(b.ribbons.FindOne(ctx, bson.M{"_id": id}), &r); err != nil {
		return nil, err
	}
	if r.ID.IsZero() {
		return nil, nil
	}
	return &r, nil
}

func (b *Bouquets) FindTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.BouquetTemplate, error) {
	var t models.BouquetTemplate
	if err := decodeOne(b.templates.FindOne(ctx, bson.M{"_id": id}), &t); err != nil {
		return nil, err
	}
	if t.ID.IsZero() {
		return nil, nil
	}
	return &t, nil
}

// ListFlowers returns all active flowers.
func (b *Bouquets) ListFlowers(ctx context.Context) ([]models.Flower, error) {
	var out []models.Flower
	return out, listAll(ctx, b.flowers, bson.M{"active": true}, &out)
}

// ListWraps returns all active wraps.
func (b *Bouquets) ListWraps(ctx context.Context) ([]models.Wrap, error) {
	var out []models.Wrap
	return out, listAll(ctx, b.wraps, bson.M{"active": true}, &out)
}

// ListRibbons returns all active ribbons.
func (b *Bouquets) ListRibbons(ctx context.Context) ([]models.Ribbon, error) {
	var out []models.Ribbon
	return out, listAll(ctx, b.ribbons, bson.M{"active": true}, &out)
}

// ListTemplates returns all bouquet templates.
func (b *Bouquets) ListTemplates(ctx context.Context) ([]models.BouquetTemplate, error) {
	var out []models.BouquetTemplate
	return out, listAll(ctx, b.templates, bson.M{}, &out)
}

// InsertTemplate stores a new bouquet template.
func (b *Bouquets) InsertTemplate(ctx context.Context, t *models.BouquetTemplate) (*models.BouquetTemplate, error) {
	t.CreatedAt = time.Now()
	result, err := b.templates.InsertOne(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = result.InsertedID.(primitive.ObjectID)
	return t, nil
}

// SaveTemplate replaces an existing template.
func (b *Bouquets) SaveTemplate(ctx context.Context, t *models.BouquetTemplate) error {
	_, err := b.templates.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	return err
}

// DeleteTemplate removes a template.
func (b *Bouquets) DeleteTemplate(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := b.templates.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// InsertBouquet stores an assembled custom bouquet.
func (b *Bouquets) InsertBouquet(ctx context.Context, cb *models.CustomBouquet) (*models.CustomBouquet, error) {
	cb.CreatedAt = time.Now()
	result, err := b.bouquets.InsertOne(ctx, cb)
	if err != nil {
		return nil, err
	}
	cb.ID = result.InsertedID.(primitive.ObjectID)
	return cb, nil
}

func decodeOne(res *mongo.SingleResult, out interface{}) error {
	err := res.Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

func listAll(ctx context.Context, coll *mongo.Collection, q bson.M, out interface{}) error {
	cursor, err := coll.Find(ctx, q)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
