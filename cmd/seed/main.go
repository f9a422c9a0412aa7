package main

import (
	"context"
	"log"
	"os"

	"petcare/internal/database"
	"petcare/internal/domain"
	"petcare/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with demo owners, pets and catalog items so the API
// can be exercised without a frontend.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "petcare.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM payment_attempts")
	db.Exec("DELETE FROM registrations")
	db.Exec("DELETE FROM care_items")
	db.Exec("DELETE FROM pets")
	db.Exec("DELETE FROM owners")

	ctx := context.Background()
	owners := repository.NewOwnerRepository(db)
	pets := repository.NewPetRepository(db)
	items := repository.NewCareItemRepository(db)

	log.Println("Creating owners...")
	demoOwners := []struct {
		email, name, phone, password string
	}{
		{"lan@example.vn", "Nguyen Thi Lan", "+84 912 345 678", "lan12345"},
		{"minh@example.vn", "Tran Van Minh", "+84 987 654 321", "minh12345"},
	}
	created := make([]domain.Owner, 0, len(demoOwners))
	for _, o := range demoOwners {
		hash, _ := bcrypt.GenerateFromPassword([]byte(o.password), bcrypt.DefaultCost)
		owner := domain.Owner{
			Email:        o.email,
			PasswordHash: string(hash),
			FullName:     o.name,
			Phone:        o.phone,
		}
		if err := owners.Create(ctx, &owner); err != nil {
			log.Fatal("seed owner:", err)
		}
		created = append(created, owner)
		log.Printf("Owner created: %s / %s", o.email, o.password)
	}

	log.Println("Creating pets...")
	demoPets := []domain.Pet{
		{OwnerID: created[0].ID, Name: "Milu", Species: "dog", Breed: "Poodle"},
		{OwnerID: created[0].ID, Name: "Mimi", Species: "cat", Breed: "British Shorthair"},
		{OwnerID: created[1].ID, Name: "Bong", Species: "dog", Breed: "Corgi"},
	}
	for i := range demoPets {
		if err := pets.Create(ctx, &demoPets[i]); err != nil {
			log.Fatal("seed pet:", err)
		}
	}

	log.Println("Creating catalog...")
	catalog := []domain.CareItem{
		{Kind: domain.KindAppointment, Name: "General checkup", Description: "Routine veterinary examination", Price: 300000, Active: true},
		{Kind: domain.KindAppointment, Name: "Vaccination", Description: "Core vaccine shot", Price: 250000, Active: true},
		{Kind: domain.KindAppointment, Name: "Dental cleaning", Description: "Teeth scaling under sedation", Price: 900000, Active: true},
		{Kind: domain.KindService, Name: "Full grooming", Description: "Bath, trim and nail clipping", Price: 400000, Active: true},
		{Kind: domain.KindService, Name: "Bath and brush", Description: "Wash and coat brushing", Price: 200000, Active: true},
		{Kind: domain.KindBoarding, Name: "Standard boarding", Description: "Per-night stay, standard kennel", Price: 350000, Active: true},
		{Kind: domain.KindBoarding, Name: "Deluxe boarding", Description: "Per-night stay, private room with webcam", Price: 600000, Active: true},
		{Kind: domain.KindService, Name: "Retired package", Description: "No longer offered", Price: 150000, Active: false},
	}
	for i := range catalog {
		if err := items.Create(ctx, &catalog[i]); err != nil {
			log.Fatal("seed catalog:", err)
		}
	}

	log.Println("Seed completed")
	log.Println("Test accounts:")
	for _, o := range demoOwners {
		log.Printf("  %s / %s", o.email, o.password)
	}
}
