package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"elvastore-api/storage"
)

// UploadController handles image uploads to the storage bucket.
type UploadController struct {
	Bucket *storage.Bucket
}

// NewUploadController creates a new UploadController.
func NewUploadController(bucket *storage.Bucket) *UploadController {
	return &UploadController{Bucket: bucket}
}

// UploadImage accepts a multipart "image" file and stores it publicly.
func (uc *UploadController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if uc.Bucket == nil {
		http.Error(w, "Uploads are not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(handler.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("uploads/%s-%d%s", uuid.NewString(), time.Now().UnixMilli(), ext)

	contentType := handler.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		switch strings.ToLower(ext) {
		case ".png":
			contentType = "image/png"
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
		case ".gif":
			contentType = "image/gif"
		default:
			contentType = "application/octet-stream"
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	url, err := uc.Bucket.UploadPublic(ctx, objectName, contentType, file)
	if err != nil {
		http.Error(w, "Upload failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "url": url})
}

// DeleteImage removes an uploaded image by its public URL.
func (uc *UploadController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if uc.Bucket == nil {
		http.Error(w, "Uploads are not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "Missing 'url' in request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := uc.Bucket.DeleteByURL(ctx, req.URL); err != nil {
		http.Error(w, "Delete failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
