package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"officecal/internal/database"
	"officecal/internal/domain"
)

// Seeds a development database with an admin, a few employees, rooms
// and sample bookings/events for the next working days.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "officecal.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed: ", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM settings")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM employees")

	log.Println("Creating employees...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.Employee{
		Name:         "Office Admin",
		Email:        "admin@officecal.test",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@officecal.test / admin123")

	names := []string{"Alice Kim", "Bob Chen", "Carol Diaz"}
	employees := make([]domain.Employee, 0, len(names))
	for i, name := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("employee123"), bcrypt.DefaultCost)
		e := domain.Employee{
			Name:         name,
			Email:        fmt.Sprintf("employee%d@officecal.test", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleEmployee,
			IsActive:     true,
		}
		db.Create(&e)
		employees = append(employees, e)
	}

	log.Println("Creating rooms...")
	rooms := []domain.Room{
		{Name: "Boardroom", Capacity: 12, Location: "4th floor", IsActive: true},
		{Name: "Huddle A", Capacity: 4, Location: "3rd floor", IsActive: true},
		{Name: "Huddle B", Capacity: 4, Location: "3rd floor", IsActive: true},
		{Name: "Old Annex", Capacity: 8, Location: "basement", IsActive: false},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	log.Println("Creating bookings...")
	tomorrow := domain.DateOf(time.Now().UTC().AddDate(0, 0, 1))
	bookings := []domain.Booking{
		{RoomID: rooms[0].ID, EmployeeID: employees[0].ID, Date: tomorrow,
			StartMinute: 9 * 60, EndMinute: 10 * 60, Purpose: "Sprint planning"},
		{RoomID: rooms[0].ID, EmployeeID: employees[1].ID, Date: tomorrow,
			StartMinute: 10 * 60, EndMinute: 11 * 60, Purpose: "Client call"},
		{RoomID: rooms[1].ID, EmployeeID: employees[2].ID, Date: tomorrow,
			StartMinute: 14 * 60, EndMinute: 15*60 + 30, Purpose: "1:1"},
	}
	for i := range bookings {
		db.Create(&bookings[i])
	}

	log.Println("Creating events...")
	nextWeek := domain.DateOf(time.Now().UTC().AddDate(0, 0, 7))
	boardroom := rooms[0].ID
	events := []domain.Event{
		{EmployeeID: admin.ID, Title: "All hands", Description: "Monthly all-hands meeting",
			Date: nextWeek, StartMinute: 16 * 60, EndMinute: 17 * 60, RoomID: &boardroom},
		{EmployeeID: admin.ID, Title: "Office holiday", Description: "Office closed",
			Date: domain.DateOf(time.Now().UTC().AddDate(0, 0, 14)), StartMinute: 0, EndMinute: domain.MinutesPerDay},
	}
	for i := range events {
		db.Create(&events[i])
	}

	log.Printf("Seed complete: %d employees, %d rooms, %d bookings, %d events",
		len(employees)+1, len(rooms), len(bookings), len(events))
}
