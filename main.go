package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"elvastore-api/config"
	"elvastore-api/controllers"
	"elvastore-api/routes"
	"elvastore-api/services"
	"elvastore-api/storage"
	"elvastore-api/store"
	"elvastore-api/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := config.Load()

	// Set the JWT secret keys
	utils.JwtKey = []byte(cfg.JWTSecret)
	utils.RefreshKey = []byte(cfg.RefreshSecret)

	// Connect to MongoDB
	client, err := store.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatal(err)
		}
	}()
	db := client.Database(cfg.MongoDB)

	// Repositories
	catalog := store.NewCatalog(db)
	orders := store.NewOrders(db)
	carts := store.NewCarts(db)
	users := store.NewUsers(db)
	bouquets := store.NewBouquets(db)
	storefront := store.NewStorefront(db)

	// Services
	orderService := services.NewOrderService(catalog, orders, carts)
	cartService := services.NewCartService(carts, catalog)
	bouquetService := services.NewBouquetService(bouquets)
	emailService := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)

	// Image uploads are optional; the rest of the API works without them.
	bucket, err := storage.NewBucket(context.Background(), storage.Credentials{
		ProjectID:   cfg.FirebaseProjectID,
		ClientEmail: cfg.FirebaseClientEmail,
		PrivateKey:  cfg.FirebasePrivateKey,
		Bucket:      cfg.FirebaseBucket,
	})
	if err != nil {
		log.Printf("Firebase storage disabled: %v", err)
	}

	// Controllers
	c := routes.Controllers{
		User:       controllers.NewUserController(users),
		Product:    controllers.NewProductController(catalog),
		Cart:       controllers.NewCartController(cartService),
		Order:      controllers.NewOrderController(orderService, orders, users, emailService),
		Bouquet:    controllers.NewBouquetController(bouquetService, bouquets),
		Storefront: controllers.NewStorefrontController(storefront),
		Upload:     controllers.NewUploadController(bucket),
	}

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, c)

	// Start the server
	fmt.Printf("Server is running on %s\n", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, router))
}
