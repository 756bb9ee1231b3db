package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/paygrid/plan-engine/internal/calculator"
	"github.com/paygrid/plan-engine/internal/config"
	"github.com/paygrid/plan-engine/internal/gateway"
	"github.com/paygrid/plan-engine/internal/handler"
	"github.com/paygrid/plan-engine/internal/repository"
	"github.com/paygrid/plan-engine/internal/service"
	"github.com/paygrid/plan-engine/pkg/response"
)

func main() {
	// Load .env before viper reads the environment
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	planRepo := repository.NewPlanRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	// Initialize the eCheck gateway
	echeck := initGateway(cfg)

	// Initialize service and handlers
	calc := calculator.New(cfg.GetInterestRate(), cfg.GetDurationCatalog())
	planService := service.NewPlanService(planRepo, customerRepo, echeck, redisClient, calc, cfg)
	planHandler := handler.NewPlanHandler(planService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(planHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func initGateway(cfg *config.Config) gateway.ECheckGateway {
	if cfg.Gateway.TestMode {
		log.Println("eCheck gateway running in test mode")
		return gateway.NewTestGateway()
	}
	return gateway.NewHTTPGateway(
		cfg.Gateway.URL,
		cfg.Gateway.ClientID,
		cfg.Gateway.APIKey,
		cfg.GetGatewayTimeout(),
	)
}

func setupRoutes(planHandler *handler.PlanHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/payment-plans/calculate", planHandler.Calculate).Methods("POST")
	api.HandleFunc("/payment-plans", planHandler.Create).Methods("POST")
	api.HandleFunc("/payment-plans", planHandler.List).Methods("GET")
	api.HandleFunc("/payment-plans/{planId}/details", planHandler.Details).Methods("GET")
	api.HandleFunc("/payment-plans/{planId}/schedule", planHandler.Schedule).Methods("GET")
	api.HandleFunc("/payment-plans/{planId}/payments/{sequenceNumber}/outcome", planHandler.RecordOutcome).Methods("POST")
	api.HandleFunc("/payment-plans/{planId}/payments/{sequenceNumber}/retry", planHandler.Retry).Methods("POST")
	api.HandleFunc("/payment-plans/{planId}/cancel", planHandler.Cancel).Methods("POST")

	return router
}
