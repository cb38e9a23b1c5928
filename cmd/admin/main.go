package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/crisis"
	"unicare/backend/internal/models"
	"unicare/backend/internal/peer"
	"unicare/backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create-admin":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin create-admin <email> <password>")
			os.Exit(1)
		}
		if err := createAdmin(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin account %s created.\n", os.Args[2])
	case "approve-application", "reject-application":
		if len(os.Args) != 3 {
			fmt.Printf("Usage: admin %s <application_id>\n", command)
			os.Exit(1)
		}
		approve := command == "approve-application"
		if err := reviewApplication(storageSvc, os.Args[2], approve); err != nil {
			log.Fatalf("Error reviewing application: %v", err)
		}
		outcome := "rejected"
		if approve {
			outcome = "approved"
		}
		fmt.Printf("Application %s has been %s.\n", os.Args[2], outcome)
	case "close-room":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin close-room <room_id>")
			os.Exit(1)
		}
		if err := storageSvc.EndRoom(os.Args[2], models.RoomStatusClosed); err != nil {
			log.Fatalf("Error closing room: %v", err)
		}
		fmt.Printf("Room %s has been closed.\n", os.Args[2])
	case "resolve-alert":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resolve-alert <alert_id>")
			os.Exit(1)
		}
		alertID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid alert ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := resolveAlert(storageSvc, uint(alertID)); err != nil {
			log.Fatalf("Error resolving alert: %v", err)
		}
		fmt.Printf("Alert %s has been resolved.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createAdmin(s storage.Storage, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.CreateUser(&models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Administrator",
		Role:         models.RoleAdmin,
		AgeBracket:   models.AgeBracketAdult,
	})
}

// cliActor makes the CLI operate as a synthetic admin so service-level
// authorization stays on the one code path.
func cliActor() authz.Actor {
	return authz.Actor{ID: "cli-admin", Role: models.RoleAdmin}
}

func reviewApplication(s storage.Storage, applicationID string, approve bool) error {
	_, err := peer.NewService(s).Review(cliActor(), applicationID, approve)
	return err
}

func resolveAlert(s storage.Storage, alertID uint) error {
	return crisis.NewService(s, nil).SetAlertStatus(cliActor(), alertID, models.AlertStatusResolved)
}
