package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"elvastore-api/middleware"
	"elvastore-api/models"
	"elvastore-api/store"
	"elvastore-api/utils"
)

// UserController handles account and address-book requests.
type UserController struct {
	Users *store.Users
}

// NewUserController creates a new UserController.
func NewUserController(users *store.Users) *UserController {
	return &UserController{Users: users}
}

type credentialsRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type authResponse struct {
	Message      string       `json:"message"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// Signup registers a new account with phone + password.
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" || req.Password == "" {
		http.Error(w, "Phone and password required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, err := uc.Users.FindByPhone(ctx, req.Phone)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "Phone already registered", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	name := req.Name
	if name == "" {
		name = "New User"
	}
	user, err := uc.Users.Insert(ctx, &models.User{
		Name:     name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hashed),
		Role:     "user",
	})
	if err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	uc.respondWithTokens(w, http.StatusCreated, "Signup successful", user)
}

// Login authenticates with phone + password.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByPhone(ctx, req.Phone)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	uc.respondWithTokens(w, http.StatusOK, "Login successful", user)
}

// Refresh exchanges a refresh token for a new access token. The token is
// accepted from a cookie or an Authorization header.
func (uc *UserController) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
			token = auth[7:]
		}
	}
	if token == "" {
		http.Error(w, "No refresh token provided", http.StatusUnauthorized)
		return
	}

	userID, err := utils.ParseRefreshToken(token)
	if err != nil {
		http.Error(w, "Invalid or expired refresh token", http.StatusForbidden)
		return
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		http.Error(w, "Invalid or expired refresh token", http.StatusForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByID(ctx, id)
	if err != nil || user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Phone, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

// Logout clears the refresh cookie.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ChangePassword replaces the password after verifying the old one.
func (uc *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone       string `json:"phone"`
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPassword == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByPhone(ctx, req.Phone)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		http.Error(w, "Incorrect old password", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	if err := uc.Users.SetPassword(ctx, user.ID, string(hashed)); err != nil {
		http.Error(w, "Error updating password", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// UpdateName changes the caller's display name.
func (uc *UserController) UpdateName(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user.Name = req.Name
	if err := uc.Users.Save(ctx, user); err != nil {
		http.Error(w, "Error updating name", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Name updated successfully", "name": user.Name})
}

// GetAddresses returns the caller's address book.
func (uc *UserController) GetAddresses(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"addresses": user.Addresses})
}

// AddAddress appends a new address; marking it default clears other defaults.
func (uc *UserController) AddAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.currentUser(w, r)
	if !ok {
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil || addr.FullName == "" || addr.City == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	addr.ID = primitive.NewObjectID()

	if addr.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}
	user.Addresses = append(user.Addresses, addr)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.Users.Save(ctx, user); err != nil {
		http.Error(w, "Error adding address", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Address added", "addresses": user.Addresses})
}

// UpdateAddress merges field updates into an existing address.
func (uc *UserController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.currentUser(w, r)
	if !ok {
		return
	}

	addressID, err := primitive.ObjectIDFromHex(mux.Vars(r)["addressId"])
	if err != nil {
		http.Error(w, "Invalid address ID", http.StatusBadRequest)
		return
	}

	var updated models.Address
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	found := -1
	for i := range user.Addresses {
		if user.Addresses[i].ID == addressID {
			found = i
			break
		}
	}
	if found < 0 {
		http.Error(w, "Address not found", http.StatusNotFound)
		return
	}

	if updated.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}
	updated.ID = addressID
	user.Addresses[found] = updated

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.Users.Save(ctx, user); err != nil {
		http.Error(w, "Error updating address", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Address updated", "address": updated})
}

// SetDefaultAddress marks one address as default and clears the rest.
func (uc *UserController) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.currentUser(w, r)
	if !ok {
		return
	}

	addressID, err := primitive.ObjectIDFromHex(mux.Vars(r)["addressId"])
	if err != nil {
		http.Error(w, "Invalid address ID", http.StatusBadRequest)
		return
	}

	for i := range user.Addresses {
		user.Addresses[i].IsDefault = user.Addresses[i].ID == addressID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.Users.Save(ctx, user); err != nil {
		http.Error(w, "Error updating default", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Default address updated", "addresses": user.Addresses})
}

// DeleteAddress removes one address from the book.
func (uc *UserController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.currentUser(w, r)
	if !ok {
		return
	}

	addressID, err := primitive.ObjectIDFromHex(mux.Vars(r)["addressId"])
	if err != nil {
		http.Error(w, "Invalid address ID", http.StatusBadRequest)
		return
	}

	kept := user.Addresses[:0]
	for _, addr := range user.Addresses {
		if addr.ID != addressID {
			kept = append(kept, addr)
		}
	}
	user.Addresses = kept

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.Users.Save(ctx, user); err != nil {
		http.Error(w, "Error deleting address", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Address deleted", "addresses": user.Addresses})
}

func (uc *UserController) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid token payload", http.StatusForbidden)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return nil, false
	}
	return user, true
}

func (uc *UserController) respondWithTokens(w http.ResponseWriter, status int, message string, user *models.User) {
	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Phone, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	user.Password = ""
	writeJSON(w, status, authResponse{
		Message:      message,
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}
