package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/middleware"
	"elvastore-api/models"
	"elvastore-api/services"
	"elvastore-api/store"
)

// BouquetController handles the custom-bouquet configurator surface.
type BouquetController struct {
	Service *services.BouquetService
	Store   *store.Bouquets
}

// NewBouquetController creates a new BouquetController.
func NewBouquetController(service *services.BouquetService, bouquets *store.Bouquets) *BouquetController {
	return &BouquetController{Service: service, Store: bouquets}
}

// ListTemplates returns all bouquet templates.
func (bc *BouquetController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	templates, err := bc.Store.ListTemplates(ctx)
	if err != nil {
		http.Error(w, "Error fetching templates", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": templates})
}

// ListParts returns the flowers, wraps, and ribbons available to the
// configurator.
func (bc *BouquetController) ListParts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	flowers, err := bc.Store.ListFlowers(ctx)
	if err != nil {
		http.Error(w, "Error fetching flowers", http.StatusInternalServerError)
		return
	}
	wraps, err := bc.Store.ListWraps(ctx)
	if err != nil {
		http.Error(w, "Error fetching wraps", http.StatusInternalServerError)
		return
	}
	ribbons, err := bc.Store.ListRibbons(ctx)
	if err != nil {
		http.Error(w, "Error fetching ribbons", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"flowers": flowers,
		"wraps":   wraps,
		"ribbons": ribbons,
	})
}

// CreateBouquet assembles and prices a custom bouquet for the caller.
func (bc *BouquetController) CreateBouquet(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req services.BouquetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	req.UserID = claims.UserID

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	bouquet, err := bc.Service.Create(ctx, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "data": bouquet})
}

// CreateTemplate adds a bouquet template (admin only).
func (bc *BouquetController) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var template models.BouquetTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil || template.Name == "" || len(template.Slots) == 0 {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if template.SlotCount == 0 {
		template.SlotCount = len(template.Slots)
	}
	template.Active = true

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := bc.Store.InsertTemplate(ctx, &template)
	if err != nil {
		http.Error(w, "Template creation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "data": created})
}

// UpdateTemplate replaces a template's definition (admin only).
func (bc *BouquetController) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid template ID", http.StatusBadRequest)
		return
	}

	var update models.BouquetTemplate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	template, err := bc.Store.FindTemplateByID(ctx, id)
	if err != nil {
		http.Error(w, "Template update failed", http.StatusInternalServerError)
		return
	}
	if template == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	template.Name = update.Name
	template.Shape = update.Shape
	template.Size = update.Size
	template.SlotCount = update.SlotCount
	template.Slots = update.Slots

	if err := bc.Store.SaveTemplate(ctx, template); err != nil {
		http.Error(w, "Template update failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "data": template})
}

// DeleteTemplate removes a template (admin only).
func (bc *BouquetController) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid template ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := bc.Store.DeleteTemplate(ctx, id)
	if err != nil {
		http.Error(w, "Template delete failed", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
