package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
)

func TestAddItemCreatesCartAndMergesLines(t *testing.T) {
	p := testProduct(5)
	catalog := newFakeCatalog(p)
	carts := newFakeCarts()
	svc := NewCartService(carts, catalog)
	ctx := context.Background()

	item := models.CartItem{ProductID: p.ID, Name: p.Name, Price: p.Price, Qty: 1, Size: "M", Color: "Red"}
	cart, err := svc.AddItem(ctx, "user-1", item)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.AddItem(ctx, "user-1", item)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same (name, size, color) merges into one line")
	assert.Equal(t, 2, cart.Items[0].Qty)

	other := models.CartItem{Name: "Custom Bouquet", Price: 40, Qty: 1}
	cart, err = svc.AddItem(ctx, "user-1", other)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemDefaultsQtyToOne(t *testing.T) {
	svc := NewCartService(newFakeCarts(), newFakeCatalog())
	cart, err := svc.AddItem(context.Background(), "user-1", models.CartItem{Name: "Custom Bouquet", Price: 40})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Qty)
}

func TestAddItemRejectsOutOfStockVariant(t *testing.T) {
	p := &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Lily Arrangement",
		Price:    30,
		Variants: []models.Variant{{Color: "White", Size: "S", Qty: 0}},
	}
	svc := NewCartService(newFakeCarts(), newFakeCatalog(p))

	_, err := svc.AddItem(context.Background(), "user-1",
		models.CartItem{ProductID: p.ID, Name: p.Name, Qty: 1, Size: "S", Color: "White"})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddItemRejectsMissingProduct(t *testing.T) {
	svc := NewCartService(newFakeCarts(), newFakeCatalog())
	_, err := svc.AddItem(context.Background(), "user-1",
		models.CartItem{ProductID: primitive.NewObjectID(), Name: "Gone", Qty: 1, Size: "M", Color: "Red"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateQtySetsAndRemoves(t *testing.T) {
	carts := newFakeCarts(&models.Cart{
		ID:     primitive.NewObjectID(),
		UserID: "user-1",
		Items: []models.CartItem{
			{Name: "Rose Bouquet", Qty: 2, Size: "M", Color: "Red"},
			{Name: "Custom Bouquet", Qty: 1},
		},
	})
	svc := NewCartService(carts, newFakeCatalog())
	ctx := context.Background()

	cart, err := svc.UpdateQty(ctx, "user-1", "Rose Bouquet", "M", "Red", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Qty)

	cart, err = svc.UpdateQty(ctx, "user-1", "Rose Bouquet", "M", "Red", 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "qty zero removes the line")
	assert.Equal(t, "Custom Bouquet", cart.Items[0].Name)

	_, err = svc.UpdateQty(ctx, "user-1", "Nope", "", "", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsEmptyCartWhenMissing(t *testing.T) {
	svc := NewCartService(newFakeCarts(), newFakeCatalog())
	cart, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Empty(t, cart.Items)
}
