package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant is a specific (color, size) combination of a Product with its own stock.
type Variant struct {
	Color string `bson:"color" json:"color"`
	Size  string `bson:"size" json:"size"`
	Qty   int    `bson:"qty" json:"qty"`
}

// Product represents an item in the catalog. Inventory is tracked per variant.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Category  string             `bson:"category" json:"category"`
	Images    []string           `bson:"images" json:"images"`
	Featured  bool               `bson:"featured" json:"featured"`
	Variants  []Variant          `bson:"variants" json:"variants"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// TotalQty is the derived total stock across all variants.
func (p *Product) TotalQty() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Qty
	}
	return total
}

// FindVariant returns the index of the variant matching (size, color) exactly,
// or -1 if no such variant exists. Matching is case-sensitive.
func (p *Product) FindVariant(size, color string) int {
	for i, v := range p.Variants {
		if v.Size == size && v.Color == color {
			return i
		}
	}
	return -1
}
