// addmanager bootstraps the first manager account so the society has
// someone who can assign complaints before any registration endpoint is
// opened up.
// Usage: from project root, run: go run ./cmd/addmanager -name "..." -phone "..." -code MGR-001 -password "..."
// Requires .env (or env) with DB_*.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"societydesk/config"
	"societydesk/models"
	"societydesk/repository"
	"societydesk/schema"
	"societydesk/service"
)

func main() {
	name := flag.String("name", "", "manager full name")
	email := flag.String("email", "", "manager email (optional)")
	phone := flag.String("phone", "", "manager phone number")
	code := flag.String("code", "", "manager code, e.g. MGR-001")
	password := flag.String("password", "", "login password")
	flag.Parse()

	if *name == "" || *phone == "" || *code == "" || *password == "" {
		log.Fatal("Usage: addmanager -name <name> -phone <phone> -code <code> -password <password> [-email <email>]")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}
	cfg := config.LoadConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("DB open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("DB ping: %v", err)
	}
	schema.InitializeDatabase(db)

	residentRepo := repository.NewResidentRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	managerRepo := repository.NewManagerRepository(db)
	accounts := service.NewAccountService(residentRepo, workerRepo, managerRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)

	manager, err := accounts.RegisterManager(&models.RegisterManagerRequest{
		Name:        *name,
		Email:       *email,
		Phone:       *phone,
		ManagerCode: *code,
		Password:    *password,
	})
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	log.Printf("Created manager ID=%d code=%s phone=%s", manager.ManagerID, manager.ManagerCode, manager.Phone)
}
