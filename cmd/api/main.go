package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-orders/internal/client"
	"restaurant-orders/internal/config"
	"restaurant-orders/internal/repository"
	"restaurant-orders/internal/server"
	"restaurant-orders/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitDatabase(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)

	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	cartRepo := repository.NewCartRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	tokenService := service.NewTokenService(cfg.Auth.AccessTokenSecret)
	userService := service.NewUserService(userRepo)
	menuService := service.NewMenuService(menuRepo, reviewRepo)
	cartService := service.NewCartService(cartRepo)
	paymentService := service.NewPaymentService(db, stripeClient, paymentRepo, cartRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(tokenService, userService, paymentService, menuService, cartService)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
