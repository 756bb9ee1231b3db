package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/paygrid/plan-engine/internal/calculator"
	"github.com/paygrid/plan-engine/internal/config"
	"github.com/paygrid/plan-engine/internal/gateway"
	"github.com/paygrid/plan-engine/internal/repository"
	"github.com/paygrid/plan-engine/internal/service"
)

func main() {
	log.Println("Starting payment scheduler...")

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	planRepo := repository.NewPlanRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	var echeck gateway.ECheckGateway
	if cfg.Gateway.TestMode {
		log.Println("eCheck gateway running in test mode")
		echeck = gateway.NewTestGateway()
	} else {
		echeck = gateway.NewHTTPGateway(cfg.Gateway.URL, cfg.Gateway.ClientID, cfg.Gateway.APIKey, cfg.GetGatewayTimeout())
	}

	calc := calculator.New(cfg.GetInterestRate(), cfg.GetDurationCatalog())
	planService := service.NewPlanService(planRepo, customerRepo, echeck, redisClient, calc, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Schedule tasks
	setupCronJobs(c, planService)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, planService *service.PlanService) {
	// Daily job to submit due payments (runs at 6 AM)
	_, err := c.AddFunc("0 0 6 * * *", func() {
		log.Println("Running daily due payment job...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if err := planService.ProcessDuePayments(ctx, time.Now()); err != nil {
			log.Printf("Due payment job failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling due payment job: %v", err)
	}

	// Daily sweep to mark defaulted plans (runs at midnight)
	_, err = c.AddFunc("0 0 0 * * *", func() {
		log.Println("Running daily default sweep...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := planService.MarkDefaults(ctx); err != nil {
			log.Printf("Default sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling default sweep: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
