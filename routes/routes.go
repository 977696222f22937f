package routes

import (
	"github.com/gorilla/mux"

	"elvastore-api/controllers"
	"elvastore-api/middleware"
)

// Controllers bundles everything RegisterRoutes needs to wire up.
type Controllers struct {
	User       *controllers.UserController
	Product    *controllers.ProductController
	Cart       *controllers.CartController
	Order      *controllers.OrderController
	Bouquet    *controllers.BouquetController
	Storefront *controllers.StorefrontController
	Upload     *controllers.UploadController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public routes
	router.HandleFunc("/auth/signup", c.User.Signup).Methods("POST")
	router.HandleFunc("/auth/login", c.User.Login).Methods("POST")
	router.HandleFunc("/auth/refresh", c.User.Refresh).Methods("POST")
	router.HandleFunc("/auth/logout", c.User.Logout).Methods("POST")

	router.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	router.HandleFunc("/categories", c.Storefront.GetCategories).Methods("GET")
	router.HandleFunc("/banners", c.Storefront.GetBanners).Methods("GET")
	router.HandleFunc("/bouquets/templates", c.Bouquet.ListTemplates).Methods("GET")
	router.HandleFunc("/bouquets/parts", c.Bouquet.ListParts).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/auth/password", c.User.ChangePassword).Methods("PUT")
	protected.HandleFunc("/me/name", c.User.UpdateName).Methods("PUT")
	protected.HandleFunc("/me/addresses", c.User.GetAddresses).Methods("GET")
	protected.HandleFunc("/me/addresses", c.User.AddAddress).Methods("POST")
	protected.HandleFunc("/me/addresses/{addressId}", c.User.UpdateAddress).Methods("PUT")
	protected.HandleFunc("/me/addresses/{addressId}/default", c.User.SetDefaultAddress).Methods("PUT")
	protected.HandleFunc("/me/addresses/{addressId}", c.User.DeleteAddress).Methods("DELETE")

	protected.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	protected.HandleFunc("/cart", c.Cart.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", c.Cart.UpdateQty).Methods("PUT")
	protected.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")

	protected.HandleFunc("/orders", c.Order.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders/from-cart", c.Order.CreateOrderFromCart).Methods("POST")
	protected.HandleFunc("/orders", c.Order.ListOrders).Methods("GET")
	protected.HandleFunc("/orders/{id}", c.Order.GetOrder).Methods("GET")
	protected.HandleFunc("/orders/{id}/cancel", c.Order.CancelOrder).Methods("PUT")
	protected.HandleFunc("/orders/{id}/address", c.Order.UpdateOrderAddress).Methods("PUT")

	protected.HandleFunc("/bouquets", c.Bouquet.CreateBouquet).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)

	admin.HandleFunc("/products", c.Product.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", c.Product.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", c.Product.DeleteProduct).Methods("DELETE")

	admin.HandleFunc("/orders/{id}/status", c.Order.UpdateOrderStatus).Methods("PUT")

	admin.HandleFunc("/categories", c.Storefront.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", c.Storefront.UpdateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", c.Storefront.DeleteCategory).Methods("DELETE")
	admin.HandleFunc("/banners", c.Storefront.CreateBanner).Methods("POST")
	admin.HandleFunc("/banners/{id}", c.Storefront.UpdateBanner).Methods("PUT")
	admin.HandleFunc("/banners/{id}", c.Storefront.DeleteBanner).Methods("DELETE")

	admin.HandleFunc("/bouquets/templates", c.Bouquet.CreateTemplate).Methods("POST")
	admin.HandleFunc("/bouquets/templates/{id}", c.Bouquet.UpdateTemplate).Methods("PUT")
	admin.HandleFunc("/bouquets/templates/{id}", c.Bouquet.DeleteTemplate).Methods("DELETE")

	admin.HandleFunc("/uploads", c.Upload.UploadImage).Methods("POST")
	admin.HandleFunc("/uploads", c.Upload.DeleteImage).Methods("DELETE")
}
