package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/middleware"
	"elvastore-api/models"
	"elvastore-api/services"
	"elvastore-api/store"
	"elvastore-api/utils"
)

// OrderController exposes the order engine over HTTP.
type OrderController struct {
	Service      *services.OrderService
	Orders       *store.Orders
	Users        *store.Users
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController.
func NewOrderController(service *services.OrderService, orders *store.Orders, users *store.Users, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Service:      service,
		Orders:       orders,
		Users:        users,
		EmailService: emailService,
	}
}

type placeOrderRequest struct {
	Items         []models.OrderItem `json:"items"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	PaymentMethod string             `json:"payment_method"`
	Shipping      float64            `json:"shipping"`
}

// CreateOrder places an order from an explicit item list (strict policy).
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := oc.Service.PlaceOrder(ctx, claims.UserID, req.Items, services.ShippingInfo{
		Address:       req.Address,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		Shipping:      req.Shipping,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	oc.notifyOrderPlaced(claims.UserID, result.Order)
	writeJSON(w, http.StatusCreated, result)
}

// CreateOrderFromCart places an order from the user's cart (clamped policy).
func (oc *OrderController) CreateOrderFromCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := oc.Service.PlaceOrderFromCart(ctx, claims.UserID, services.ShippingInfo{
		Address:       req.Address,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		Shipping:      req.Shipping,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	oc.notifyOrderPlaced(claims.UserID, result.Order)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"order":    result.Order,
		"sold_out": result.Rejected,
		"message":  "Order created from cart",
	})
}

// ListOrders returns the caller's orders; admins may query any user and
// filter by status.
func (oc *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := store.OrderFilter{UserID: claims.UserID}
	if claims.Role == "admin" {
		filter.UserID = r.URL.Query().Get("userId")
		if s := models.OrderStatus(r.URL.Query().Get("status")); models.ValidStatus(s) {
			filter.Status = s
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.List(ctx, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": orders})
}

// GetOrder returns a single order for its owner or an admin.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := oc.Orders.FindOrderByID(ctx, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if order == nil || (claims.Role != "admin" && order.UserID != claims.UserID) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status (admin only; the router
// applies the admin gate). Stock is restocked or re-reserved when the
// transition crosses the cancelled boundary.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := oc.Service.SetOrderStatus(ctx, orderID, req.Status, claims.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	oc.notifyStatusChanged(result.Order)
	writeJSON(w, http.StatusOK, result)
}

// CancelOrder lets the authenticated user cancel their own pending order.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := oc.Service.CancelOwnOrder(ctx, orderID, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Order)
}

// UpdateOrderAddress changes the delivery address on the caller's order.
func (oc *OrderController) UpdateOrderAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Orders.FindOrderByID(ctx, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if order == nil || (claims.Role != "admin" && order.UserID != claims.UserID) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	updated, err := oc.Orders.UpdateOrderAddress(ctx, orderID, req.Address, req.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (oc *OrderController) notifyOrderPlaced(userID string, order *models.Order) {
	go func() {
		email := oc.lookupEmail(userID)
		if email == "" {
			return
		}
		if err := oc.EmailService.SendOrderConfirmationEmail(email, order); err != nil {
			log.Printf("Failed to send confirmation email to %s: %v", email, err)
		}
	}()
}

func (oc *OrderController) notifyStatusChanged(order *models.Order) {
	go func() {
		email := oc.lookupEmail(order.UserID)
		if email == "" {
			return
		}
		if err := oc.EmailService.SendOrderStatusEmail(email, order); err != nil {
			log.Printf("Failed to send status email to %s: %v", email, err)
		}
	}()
}

func (oc *OrderController) lookupEmail(userID string) string {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	user, err := oc.Users.FindByID(ctx, id)
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}
