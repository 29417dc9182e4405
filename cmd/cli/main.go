package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
	"github.com/Rickychen930/sing4you-sub002/internal/store"
)

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	addEmail := addAdminCmd.String("email", "", "Email for the new admin")
	addPassword := addAdminCmd.String("password", "", "Password for the new admin")
	addName := addAdminCmd.String("name", "", "Display name for the new admin")

	setPasswordCmd := flag.NewFlagSet("set-password", flag.ExitOnError)
	setEmail := setPasswordCmd.String("email", "", "Email of the admin")
	setPassword := setPasswordCmd.String("password", "", "New password")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin' or 'set-password' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *addEmail == "" || *addPassword == "" {
			fmt.Println("email and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		createAdmin(*addEmail, *addPassword, *addName)
	case "set-password":
		setPasswordCmd.Parse(os.Args[2:])
		if *setEmail == "" || *setPassword == "" {
			fmt.Println("email and password are required")
			setPasswordCmd.PrintDefaults()
			os.Exit(1)
		}
		changePassword(*setEmail, *setPassword)
	default:
		fmt.Println("expected 'add-admin' or 'set-password' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./sing4you.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running the cli before the server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createAdmin(email, password, name string) {
	db := openStore()

	// Hash here, before persisting: the store only ever sees the hash.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.Admin{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hashedPassword),
		Name:         name,
	}
	if err := db.CreateAdmin(admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin '%s' created successfully.\n", admin.Email)
}

func changePassword(email, password string) {
	db := openStore()

	admin, err := db.GetAdminByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Fatalf("Failed to look up admin: %v", err)
	}
	if admin == nil {
		log.Fatalf("No admin found with email %q", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if _, err := db.UpdateAdminPassword(admin.ID, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}

	fmt.Printf("Password updated for '%s'.\n", admin.Email)
}
