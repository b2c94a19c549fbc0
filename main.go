package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"property-backend/config"
	"property-backend/controllers"
	"property-backend/routes"
	"property-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Println("warning: JWT_SECRET not set, using the insecure development default")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("database connection established, migrations applied")

	// Services
	bookingService := services.NewBookingService(db)
	availabilityService := services.NewAvailabilityService(db)
	pricingService := services.NewPricingService(db)
	contactService := services.NewContactService(db)
	importService := services.NewImportService(db)
	exportService := services.NewExportService(db)
	requestService := services.NewRequestService(db)
	resourceService := services.NewResourceService(db)

	// Controllers
	bookingController := controllers.NewBookingController(bookingService)
	availabilityController := controllers.NewAvailabilityController(availabilityService, pricingService)
	contactController := controllers.NewContactController(contactService, exportService)
	importController := controllers.NewImportController(importService, exportService)
	requestController := controllers.NewRequestController(requestService)
	resourceController := controllers.NewResourceController(resourceService)

	router := routes.SetupRouter(
		bookingController,
		availabilityController,
		contactController,
		importController,
		requestController,
		resourceController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
