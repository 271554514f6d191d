package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fadehouse/barbershop-api/internal/config"
	"github.com/fadehouse/barbershop-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate runs AutoMigrate plus the raw statements gorm cannot express.
// Shared with the test databases.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Barber{},
		&models.Chair{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Booking{},
		&models.BookingService{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Backstop against two racing inserts of the exact same slot. Overlap
	// checks happen transactionally in the repository; this index makes the
	// database the final arbiter for identical start instants.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
        ON bookings (barber_id, chair_id, booking_date)
        WHERE status = 'confirmed'
    `).Error; err != nil {
		return err
	}

	// Postgres additionally arbitrates overlapping-but-distinct intervals:
	// under READ COMMITTED two creates can both pass the in-transaction
	// overlap count, and the unique index only catches identical starts.
	// sqlite (tests) has no exclusion constraints; there the single-writer
	// model closes the same gap.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return err
		}
		return db.Exec(`
            DO $$
            BEGIN
                IF NOT EXISTS (
                    SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
                ) THEN
                    ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
                        EXCLUDE USING gist (
                            barber_id WITH =,
                            chair_id WITH =,
                            tsrange(booking_date, end_time) WITH &&
                        )
                        WHERE (status = 'confirmed');
                END IF;
            END $$
        `).Error
	}

	return nil
}
