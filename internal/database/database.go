package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" database/sql driver used below.
	_ "modernc.org/sqlite"

	"officecal/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate runs AutoMigrate for all entities and installs the store-level
// overlap guard. On Postgres that guard is an exclusion constraint over
// (room_id, date, minute range); concurrent overlapping admissions that
// slip past the application check violate it and one transaction aborts.
// SQLite serializes writers, so the in-transaction re-check is sufficient.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Employee{},
		&domain.Room{},
		&domain.Event{},
		&domain.Booking{},
		&domain.Setting{},
		&domain.Notification{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	return db.Exec(`
DO $$
BEGIN
    ALTER TABLE bookings
    ADD CONSTRAINT bookings_no_overlap
    EXCLUDE USING gist (
        room_id WITH =,
        date WITH =,
        int4range(start_minute, end_minute) WITH &&
    );
EXCEPTION WHEN duplicate_object OR duplicate_table THEN
    NULL;
END $$`).Error
}
