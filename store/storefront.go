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

// Storefront holds the browse-surface collections: categories and banners.
type Storefront struct {
	categories *mongo.Collection
	banners    *mongo.Collection
}

// NewStorefront creates a Storefront repository over the given database.
func NewStorefront(db *mongo.Database) *Storefront {
	return &Storefront{
		categories: db.Collection("categories"),
		banners:    db.Collection("banners"),
	}
}

// ListCategories returns all categories, newest first.
func (s *Storefront) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Category
	return out, cursor.All(ctx, &out)
}

// FindCategoryByName returns the category with the given name, or (nil, nil).
func (s *Storefront) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	err := s.categories.FindOne(ctx, bson.M{"name": name}).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// InsertCategory stores a new category.
func (s *Storefront) InsertCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	cat.CreatedAt = time.Now()
	result, err := s.categories.InsertOne(ctx, cat)
	if err != nil {
		return nil, err
	}
	cat.ID = result.InsertedID.(primitive.ObjectID)
	return cat, nil
}

// SaveCategory replaces an existing category.
func (s *Storefront) SaveCategory(ctx context.Context, cat *models.Category) error {
	_, err := s.categories.ReplaceOne(ctx, bson.M{"_id": cat.ID}, cat)
	return err
}

// DeleteCategory removes a category.
func (s *Storefront) DeleteCategory(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// FindCategoryByID returns the category, or (nil, nil).
func (s *Storefront) FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var cat models.Category
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// ListBanners returns all banners, newest first.
func (s *Storefront) ListBanners(ctx context.Context) ([]models.Banner, error) {
	cursor, err := s.banners.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Banner
	return out, cursor.All(ctx, &out)
}

// InsertBanner stores a new banner.
func (s *Storefront) InsertBanner(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	b.CreatedAt = time.Now()
	result, err := s.banners.InsertOne(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = result.InsertedID.(primitive.ObjectID)
	return b, nil
}

// UpdateBanner applies the given fields and returns the updated banner.
func (s *Storefront) UpdateBanner(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Banner, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Banner
	err := s.banners.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBanner removes a banner.
func (s *Storefront) DeleteBanner(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.banners.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
