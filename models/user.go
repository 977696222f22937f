package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is one entry in a user's address book.
type Address struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Label       string             `bson:"label" json:"label"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Phone       string             `bson:"phone" json:"phone"`
	City        string             `bson:"city" json:"city"`
	Area        string             `bson:"area" json:"area"`
	Street      string             `bson:"street" json:"street"`
	BuildingNo  string             `bson:"building_no" json:"building_no"`
	Floor       string             `bson:"floor,omitempty" json:"floor,omitempty"`
	ApartmentNo string             `bson:"apartment_no,omitempty" json:"apartment_no,omitempty"`
	Landmark    string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsDefault   bool               `bson:"is_default" json:"is_default"`
}

// User represents an account. Authentication is phone + password.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"` // "user" or "admin"
	Verified  bool               `bson:"verified" json:"verified"`
	Addresses []Address          `bson:"addresses" json:"addresses"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
