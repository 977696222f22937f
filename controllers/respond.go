package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"elvastore-api/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

// writeServiceError maps service error kinds to HTTP status codes. Anything
// unrecognized is a server fault.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrNothingFulfillable),
		errors.Is(err, services.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("server error: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
