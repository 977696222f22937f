package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products for storefront browsing.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	ImageURL  string             `bson:"image_url" json:"image_url"`
	Featured  bool               `bson:"featured" json:"featured"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// Banner is a promotional image shown on the storefront.
type Banner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	ImageURL  string             `bson:"image_url" json:"image_url"`
	LinkURL   string             `bson:"link_url,omitempty" json:"link_url,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
