package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// registers the cgo-free "sqlite" database/sql driver used below
	_ "modernc.org/sqlite"
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

// EnsureBookingExclusion installs the Postgres constraint that backstops the
// double-booking race: two non-cancelled bookings on the same resource may
// never hold overlapping [start, end) ranges. Employee and court ids come
// from different tables, so the key includes resource_kind; bookings without
// a resource share one pool per business, keyed via COALESCE on business_id.
// No-op on SQLite.
func EnsureBookingExclusion(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`ALTER TABLE bookings ADD CONSTRAINT idx_no_double_booking
EXCLUDE USING gist (
  resource_kind WITH =,
  COALESCE(resource_id, business_id) WITH =,
  tstzrange(start_time, start_time + make_interval(mins => duration_minutes), '[)') WITH &&
) WHERE (status <> 'cancelled')`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			return err
		}
	}
	return nil
}
