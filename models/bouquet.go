package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flower is a single stem available for custom bouquets.
type Flower struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"image_url" json:"image_url"`
	Price       float64            `bson:"price" json:"price"`
	Active      bool               `bson:"active" json:"active"`
}

// Wrap is an outer wrapping option for a bouquet.
type Wrap struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	ImageURL string             `bson:"image_url" json:"image_url"`
	Price    float64            `bson:"price" json:"price"`
	Active   bool               `bson:"active" json:"active"`
}

// Ribbon is a ribbon option for a bouquet.
type Ribbon struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	ImageURL string             `bson:"image_url" json:"image_url"`
	Price    float64            `bson:"price" json:"price"`
	Active   bool               `bson:"active" json:"active"`
}

// BouquetTemplate defines the arrangement a custom bouquet is built on:
// how many flower slots it has and where they sit.
type BouquetTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Shape     string             `bson:"shape,omitempty" json:"shape,omitempty"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	SlotCount int                `bson:"slot_count" json:"slot_count"`
	Slots     []TemplateSlot     `bson:"slots" json:"slots"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// TemplateSlot is one flower position in a template.
type TemplateSlot struct {
	Index int     `bson:"index" json:"index"`
	X     float64 `bson:"x" json:"x"`
	Y     float64 `bson:"y" json:"y"`
}

// BouquetSlotItem is a priced flower placed in a template slot.
type BouquetSlotItem struct {
	SlotIndex  int                `bson:"slot_index" json:"slot_index"`
	FlowerID   primitive.ObjectID `bson:"flower_id" json:"flower_id"`
	FlowerName string             `bson:"flower_name" json:"flower_name"`
	UnitPrice  float64            `bson:"unit_price" json:"unit_price"`
}

// BouquetOption is a priced wrap or ribbon snapshot.
type BouquetOption struct {
	OptionID primitive.ObjectID `bson:"option_id" json:"option_id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
}

// BouquetPricing is the price breakdown frozen at assembly time.
type BouquetPricing struct {
	FlowersTotal float64 `bson:"flowers_total" json:"flowers_total"`
	WrapPrice    float64 `bson:"wrap_price" json:"wrap_price"`
	RibbonPrice  float64 `bson:"ribbon_price" json:"ribbon_price"`
	GrandTotal   float64 `bson:"grand_total" json:"grand_total"`
}

// CustomBouquet is a user-assembled bouquet: a template filled with flowers,
// optionally wrapped and ribboned, with pricing snapshotted at creation.
type CustomBouquet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"user_id" json:"user_id"`
	TemplateID  primitive.ObjectID `bson:"template_id" json:"template_id"`
	Items       []BouquetSlotItem  `bson:"items" json:"items"`
	Wrap        *BouquetOption     `bson:"wrap,omitempty" json:"wrap,omitempty"`
	Ribbon      *BouquetOption     `bson:"ribbon,omitempty" json:"ribbon,omitempty"`
	Pricing     BouquetPricing     `bson:"pricing" json:"pricing"`
	SnapshotURL string             `bson:"snapshot_url,omitempty" json:"snapshot_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
