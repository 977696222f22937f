package services

import (
	"context"
	"fmt"

	"elvastore-api/models"
)

// CartService owns cart line merging and quantity edits. Lines merge on
// (name, size, color); adding a selection that already exists bumps its qty.
type CartService struct {
	carts   CartStore
	catalog CatalogStore
}

// NewCartService wires the cart service to its stores.
func NewCartService(carts CartStore, catalog CatalogStore) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// Get returns the user's cart, or an empty cart when none exists yet.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId required", ErrInvalidRequest)
	}
	cart, err := s.carts.FindCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return cart, nil
}

// AddItem merges the item into the user's cart, creating the cart if needed.
// When the item references a catalog variant, the variant must exist and have
// stock; custom bouquet lines (no product reference) skip the check.
func (s *CartService) AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	if userID == "" || item.Name == "" {
		return nil, fmt.Errorf("%w: userId and item name required", ErrInvalidRequest)
	}
	if item.Qty <= 0 {
		item.Qty = 1
	}

	if !item.ProductID.IsZero() && (item.Size != "" || item.Color != "") {
		product, err := s.catalog.FindProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("looking up product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID.Hex())
		}
		idx := product.FindVariant(item.Size, item.Color)
		if idx < 0 || product.Variants[idx].Qty <= 0 {
			return nil, fmt.Errorf("%w: selected variant is out of stock", ErrInsufficientStock)
		}
	}

	cart, err := s.carts.FindCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameLine(item) {
			cart.Items[i].Qty += item.Qty
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQty sets the quantity of the matching line; qty <= 0 removes it.
func (s *CartService) UpdateQty(ctx context.Context, userID, name, size, color string, qty int) (*models.Cart, error) {
	if userID == "" || name == "" {
		return nil, fmt.Errorf("%w: userId and product name required", ErrInvalidRequest)
	}

	cart, err := s.carts.FindCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("%w: cart", ErrNotFound)
	}

	target := models.CartItem{Name: name, Size: size, Color: color}
	found := -1
	for i := range cart.Items {
		if cart.Items[i].SameLine(target) {
			found = i
			break
		}
	}
	if found < 0 {
		return nil, fmt.Errorf("%w: cart item", ErrNotFound)
	}

	if qty <= 0 {
		cart.Items = append(cart.Items[:found], cart.Items[found+1:]...)
	} else {
		cart.Items[found].Qty = qty
	}

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId required", ErrInvalidRequest)
	}
	return s.carts.DeleteCartByUser(ctx, userID)
}
