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

// Users is the Mongo-backed user store.
type Users struct {
	coll *mongo.Collection
}

// NewUsers creates a Users repository over the given database.
func NewUsers(db *mongo.Database) *Users {
	return &Users{coll: db.Collection("users")}
}

// FindByPhone returns the user with the given phone, or (nil, nil).
func (u *Users) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := u.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id, or (nil, nil).
func (u *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := u.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert stores a new user and returns it with its assigned ID.
func (u *Users) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	result, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// Save writes the user document back, replacing its current state. Used for
// address book edits and profile updates.
func (u *Users) Save(ctx context.Context, user *models.User) error {
	_, err := u.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

// SetPassword updates only the stored password hash.
func (u *Users) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := u.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": hash}})
	return err
}
