package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is a member of the status enumeration.
// Any other string is rejected at the API boundary.
func ValidStatus(s OrderStatus) bool {
	return orderStatuses[s]
}

// OrderItem is a denormalized snapshot of the product at order time. It is
// frozen at creation: later catalog edits or deletions never alter it.
// ProductID is optional so custom bouquet lines can exist without a catalog
// product behind them.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id,omitempty" json:"product_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Qty       int                `bson:"qty" json:"qty"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
	ImageURL  string             `bson:"image_url" json:"image_url"`

	// Set only for custom bouquet lines.
	BouquetID primitive.ObjectID `bson:"bouquet_id,omitempty" json:"bouquet_id,omitempty"`
}

// StatusChange is one entry in the order's audit trail.
type StatusChange struct {
	Status    OrderStatus `bson:"status" json:"status"`
	ChangedBy string      `bson:"changed_by" json:"changed_by"`
	ChangedAt time.Time   `bson:"changed_at" json:"changed_at"`
}

// Order represents a placed order. Items are immutable after creation; only
// Status and Address are mutated post-creation.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"user_id" json:"user_id"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Shipping      float64            `bson:"shipping" json:"shipping"`
	Total         float64            `bson:"total" json:"total"`
	Address       string             `bson:"address" json:"address"`
	Phone         string             `bson:"phone" json:"phone"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Status        OrderStatus        `bson:"status" json:"status"`
	StatusHistory []StatusChange     `bson:"status_history" json:"status_history"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
