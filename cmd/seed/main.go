package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotelops/internal/database"
	"hotelops/internal/domain"
	"hotelops/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("hotelops.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM order_status_events")
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM request_status_events")
	db.Exec("DELETE FROM service_requests")
	db.Exec("DELETE FROM token_issuances")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM tables")
	db.Exec("DELETE FROM staff_users")
	db.Exec("DELETE FROM properties")

	ctx := context.Background()

	properties := repository.NewPropertyRepository(db)
	rooms := repository.NewRoomRepository(db)
	staff := repository.NewStaffRepository(db)

	log.Println("Creating property...")
	property := domain.Property{
		Name:    "Grand Meridian",
		Address: "12 Seaside Blvd",
		City:    "Almaty",
	}
	if err := properties.Create(ctx, &property); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating rooms...")
	for floor := 1; floor <= 3; floor++ {
		for n := 1; n <= 8; n++ {
			room := domain.Room{
				PropertyID: property.ID,
				Number:     fmt.Sprintf("%d%02d", floor, n),
				Floor:      floor,
				Status:     domain.RoomAvailable,
			}
			if err := rooms.Create(ctx, &room); err != nil {
				log.Fatal(err)
			}
		}
	}

	log.Println("Creating restaurant tables...")
	for n := 1; n <= 10; n++ {
		table := domain.Table{PropertyID: property.ID, Number: n}
		if err := properties.CreateTable(ctx, &table); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating staff users...")
	users := []struct {
		email string
		name  string
		role  domain.StaffRole
		pass  string
	}{
		{"frontdesk@grandmeridian.kz", "Aigerim", domain.RoleFrontDesk, "frontdesk123"},
		{"kitchen@grandmeridian.kz", "Bauyrzhan", domain.RoleKitchen, "kitchen123"},
		{"manager@grandmeridian.kz", "Dana", domain.RoleManager, "manager123"},
	}
	for _, u := range users {
		hash, _ := bcrypt.GenerateFromPassword([]byte(u.pass), bcrypt.DefaultCost)
		su := domain.StaffUser{
			PropertyID:   property.ID,
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
		}
		if err := staff.Create(ctx, &su); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("Seed complete: property_id=%d rooms=24 tables=10 staff=%d (created at %s)",
		property.ID, len(users), time.Now().Format(time.RFC3339))
}
