package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"societydesk/config"
	"societydesk/repository"
	"societydesk/routes"
	"societydesk/schema"
	"societydesk/service"
	"societydesk/worker"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize database connection (UTC for consistent timestamps)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Database connection established")

	// Create any missing tables
	schema.InitializeDatabase(db)

	// Initialize repositories
	complaintRepo := repository.NewComplaintRepository(db)
	residentRepo := repository.NewResidentRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	managerRepo := repository.NewManagerRepository(db)
	resolutionLogRepo := repository.NewResolutionLogRepository(db)

	// Initialize services
	complaintService := service.NewComplaintService(complaintRepo, residentRepo, workerRepo, resolutionLogRepo)
	accountService := service.NewAccountService(
		residentRepo,
		workerRepo,
		managerRepo,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTLHours,
	)

	// Priority-aging worker: disabled unless an interval is configured
	if cfg.Escalation.WorkerIntervalSeconds > 0 {
		escalationWorker := worker.NewEscalationWorker(
			complaintRepo,
			time.Duration(cfg.Escalation.WorkerIntervalSeconds)*time.Second,
			time.Duration(cfg.Escalation.UnassignedAgeHours)*time.Hour,
		)
		escalationWorker.Start()
		defer escalationWorker.Stop()
	} else {
		log.Println("Escalation worker disabled (ESCALATION_WORKER_INTERVAL_SECONDS not set)")
	}

	// Setup routes
	router := routes.SetupRoutes(complaintService, accountService, cfg.Auth.JWTSecret)

	// Add CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Handle preflight requests
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	// Wrap router with CORS middleware
	handler := corsHandler(router)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
