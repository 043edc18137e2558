package main

import (
	"log"
	"os"

	"github.com/mastercodercat/coffee-swap-protocol/internal/auth"
	"github.com/mastercodercat/coffee-swap-protocol/internal/db"
	"github.com/mastercodercat/coffee-swap-protocol/internal/router"
	"github.com/mastercodercat/coffee-swap-protocol/internal/shop"
	"github.com/mastercodercat/coffee-swap-protocol/internal/token"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Validate JWT_SECRET early (fail fast)
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	spender := os.Getenv("SHOP_SERVICE_ADDRESS")
	if spender == "" {
		spender = "coffee-swap-service"
	}

	// Token collaborator: deployed service when configured, in-memory
	// stand-in otherwise
	var tokens token.Client
	if url := os.Getenv("TOKEN_SERVICE_URL"); url != "" {
		tokens = token.NewHTTPClient(url, spender)
		log.Println("Using token service at", url)
	} else {
		tokens = token.NewInMemoryClient(spender)
		log.Println("TOKEN_SERVICE_URL not set, using in-memory token ledger")
	}

	// Repositories: postgres when configured, in-memory otherwise
	var accountRepo auth.AccountRepository
	var shopRepo shop.Repository
	if os.Getenv("DATABASE_URL") != "" {
		pgDB := db.ConnectPostgres()
		accountRepo = auth.NewPostgresAccountRepository(pgDB)
		shopRepo = shop.NewPostgresRepository(pgDB)
	} else {
		accountRepo = auth.NewInMemoryAccountRepository()
		shopRepo = shop.NewInMemoryRepository()
		log.Println("DATABASE_URL not set, using in-memory stores")
	}

	authService := auth.NewService(accountRepo)
	authHandler := auth.NewHandler(authService)

	shopService := shop.NewService(shopRepo, tokens)
	if os.Getenv("STRICT_RECIPE_SHARES") == "true" {
		shopService.StrictShares = true
	}
	shopHandler := shop.NewHandler(shopService)

	r := router.NewRouter(authHandler, shopHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
