package database

import (
	"fmt"

	"gorm.io/gorm"

	"hotelpms/internal/domain"
)

// Models lists every table owned by the application, in dependency order.
func Models() []any {
	return []any{
		&domain.Hotel{},
		&domain.User{},
		&domain.Room{},
		&domain.Client{},
		&domain.Booking{},
		&domain.EmailLog{},
	}
}

// Migrate creates or updates the schema. On PostgreSQL it also installs the
// exclusion constraint that rejects overlapping active bookings of a room at
// the storage level.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := installBookingExclusion(db); err != nil {
			return fmt.Errorf("booking exclusion constraint: %w", err)
		}
	}
	return nil
}

const bookingExclusionSQL = `
CREATE EXTENSION IF NOT EXISTS btree_gist;
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (room_id WITH =, daterange(check_in, check_out, '[)') WITH &&)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$;`

func installBookingExclusion(db *gorm.DB) error {
	return db.Exec(bookingExclusionSQL).Error
}
