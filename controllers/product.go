package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
	"elvastore-api/store"
)

// ProductController handles catalog requests.
type ProductController struct {
	Catalog *store.Catalog
}

// NewProductController creates a new ProductController.
func NewProductController(catalog *store.Catalog) *ProductController {
	return &ProductController{Catalog: catalog}
}

// GetProducts retrieves products, optionally filtered by search, category,
// and featured flag.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	q := r.URL.Query()
	products, err := pc.Catalog.List(ctx, store.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
	})
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": products, "total": len(products)})
}

// GetProductByID retrieves a single product.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.Catalog.FindProductByID(ctx, id)
	if err != nil {
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct adds a new product (admin only).
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.Price <= 0 || product.Category == "" {
		http.Error(w, "name, price, category are required", http.StatusBadRequest)
		return
	}
	for _, v := range product.Variants {
		if v.Qty < 0 {
			http.Error(w, "variant qty cannot be negative", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := pc.Catalog.Insert(ctx, &product)
	if err != nil {
		http.Error(w, "Error creating product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct applies field updates to a product (admin only).
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	var update struct {
		Name     *string           `json:"name"`
		Price    *float64          `json:"price"`
		Category *string           `json:"category"`
		Images   *[]string         `json:"images"`
		Featured *bool             `json:"featured"`
		Variants *[]models.Variant `json:"variants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.Catalog.FindProductByID(ctx, id)
	if err != nil {
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Images != nil {
		product.Images = *update.Images
	}
	if update.Featured != nil {
		product.Featured = *update.Featured
	}
	if update.Variants != nil {
		for _, v := range *update.Variants {
			if v.Qty < 0 {
				http.Error(w, "variant qty cannot be negative", http.StatusBadRequest)
				return
			}
		}
		product.Variants = *update.Variants
	}

	if err := pc.Catalog.SaveProduct(ctx, product); err != nil {
		http.Error(w, "Error updating product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product (admin only). Existing orders keep their
// denormalized snapshots.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := pc.Catalog.Delete(ctx, id)
	if err != nil {
		http.Error(w, "Error deleting product", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
