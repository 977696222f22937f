package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
	"elvastore-api/store"
)

// StorefrontController handles category and banner requests.
type StorefrontController struct {
	Store *store.Storefront
}

// NewStorefrontController creates a new StorefrontController.
func NewStorefrontController(s *store.Storefront) *StorefrontController {
	return &StorefrontController{Store: s}
}

// GetCategories returns all categories.
func (sc *StorefrontController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := sc.Store.ListCategories(ctx)
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": categories})
}

// CreateCategory adds a category (admin only). Names are unique.
func (sc *StorefrontController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil || strings.TrimSpace(cat.Name) == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	cat.Name = strings.TrimSpace(cat.Name)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, err := sc.Store.FindCategoryByName(ctx, cat.Name)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "Category already exists", http.StatusBadRequest)
		return
	}

	created, err := sc.Store.InsertCategory(ctx, &cat)
	if err != nil {
		http.Error(w, "Error creating category", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory applies field updates to a category (admin only).
func (sc *StorefrontController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	var update struct {
		Name     *string `json:"name"`
		ImageURL *string `json:"image_url"`
		Featured *bool   `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cat, err := sc.Store.FindCategoryByID(ctx, id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if cat == nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if update.Name != nil {
		cat.Name = strings.TrimSpace(*update.Name)
	}
	if update.ImageURL != nil {
		cat.ImageURL = *update.ImageURL
	}
	if update.Featured != nil {
		cat.Featured = *update.Featured
	}

	if err := sc.Store.SaveCategory(ctx, cat); err != nil {
		http.Error(w, "Error updating category", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// DeleteCategory removes a category (admin only).
func (sc *StorefrontController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := sc.Store.DeleteCategory(ctx, id)
	if err != nil {
		http.Error(w, "Error deleting category", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

// GetBanners returns all banners.
func (sc *StorefrontController) GetBanners(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	banners, err := sc.Store.ListBanners(ctx)
	if err != nil {
		http.Error(w, "Error fetching banners", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": banners})
}

// CreateBanner adds a banner (admin only).
func (sc *StorefrontController) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var banner models.Banner
	if err := json.NewDecoder(r.Body).Decode(&banner); err != nil || banner.ImageURL == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := sc.Store.InsertBanner(ctx, &banner)
	if err != nil {
		http.Error(w, "Error creating banner", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateBanner applies field updates to a banner (admin only).
func (sc *StorefrontController) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid banner ID", http.StatusBadRequest)
		return
	}

	var update struct {
		Title    *string `json:"title"`
		ImageURL *string `json:"image_url"`
		LinkURL  *string `json:"link_url"`
		Active   *bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	fields := bson.M{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.LinkURL != nil {
		fields["link_url"] = *update.LinkURL
	}
	if update.Active != nil {
		fields["active"] = *update.Active
	}
	if len(fields) == 0 {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	banner, err := sc.Store.UpdateBanner(ctx, id, fields)
	if err != nil {
		http.Error(w, "Error updating banner", http.StatusInternalServerError)
		return
	}
	if banner == nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, banner)
}

// DeleteBanner removes a banner (admin only).
func (sc *StorefrontController) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid banner ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := sc.Store.DeleteBanner(ctx, id); err != nil {
		http.Error(w, "Error deleting banner", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
