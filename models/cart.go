package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a line in a user's cart. ProductID is optional: custom bouquet
// lines carry no catalog product.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id,omitempty" json:"product_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Qty       int                `bson:"qty" json:"qty"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
	ImageURL  string             `bson:"image_url" json:"image_url"`
	BouquetID primitive.ObjectID `bson:"bouquet_id,omitempty" json:"bouquet_id,omitempty"`
}

// SameLine reports whether two cart items belong to the same merge line.
// Lines merge on (name, size, color), matching how the storefront identifies
// a selection.
func (ci CartItem) SameLine(other CartItem) bool {
	return ci.Name == other.Name && ci.Size == other.Size && ci.Color == other.Color
}

// Cart holds a user's pending selections.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
