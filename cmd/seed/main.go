package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bookwise/internal/database"
	"bookwise/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "bookwise.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Business{},
		&domain.Employee{},
		&domain.ServiceOffering{},
		&domain.Court{},
		&domain.WorkingHoursConfig{},
		&domain.Holiday{},
		&domain.EmployeeHoliday{},
		&domain.Booking{},
		&domain.ConsentRecord{},
		&domain.Payment{},
		&domain.WebhookEvent{},
		&domain.NotificationOutbox{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := database.EnsureBookingExclusion(db); err != nil {
		log.Fatal("Exclusion constraint failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notification_outbox")
	db.Exec("DELETE FROM webhook_events")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM consent_records")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM employee_holidays")
	db.Exec("DELETE FROM holidays")
	db.Exec("DELETE FROM working_hours_configs")
	db.Exec("DELETE FROM courts")
	db.Exec("DELETE FROM service_offerings")
	db.Exec("DELETE FROM employees")
	db.Exec("DELETE FROM businesses")

	log.Println("Creating businesses...")
	salon := domain.Business{
		OwnerUserID:            100,
		Name:                   "Aurora Beauty Salon",
		Category:               domain.CategorySalon,
		DefaultDurationMinutes: 60,
	}
	clinic := domain.Business{
		OwnerUserID:            101,
		Name:                   "City Dental Clinic",
		Category:               domain.CategoryClinic,
		RequiresConsentForm:    true,
		DefaultDurationMinutes: 45,
	}
	courts := domain.Business{
		OwnerUserID:            102,
		Name:                   "Riverside Tennis Center",
		Category:               domain.CategoryCourt,
		DefaultDurationMinutes: 60,
	}
	for _, b := range []*domain.Business{&salon, &clinic, &courts} {
		if err := db.Create(b).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating employees and offerings...")
	db.Create(&domain.Employee{BusinessID: salon.ID, UserID: 201, Name: "Aliya"})
	db.Create(&domain.Employee{BusinessID: salon.ID, UserID: 202, Name: "Marat"})
	db.Create(&domain.Employee{BusinessID: clinic.ID, UserID: 203, Name: "Dr. Kim"})

	db.Create(&domain.ServiceOffering{BusinessID: salon.ID, Name: "Haircut", DurationMinutes: 30, Price: 8000})
	db.Create(&domain.ServiceOffering{BusinessID: salon.ID, Name: "Coloring", DurationMinutes: 120, Price: 25000})
	db.Create(&domain.ServiceOffering{BusinessID: clinic.ID, Name: "Checkup", DurationMinutes: 45, Price: 15000})

	db.Create(&domain.Court{BusinessID: courts.ID, Name: "Court 1", DurationMinutes: 60, PricePerHour: 6000})
	db.Create(&domain.Court{BusinessID: courts.ID, Name: "Court 2", DurationMinutes: 60, PricePerHour: 6000})

	log.Println("Creating working hours...")
	for _, b := range []domain.Business{salon, clinic, courts} {
		for _, cfg := range domain.DefaultWorkingHours(b.ID) {
			c := cfg
			if err := db.Create(&c).Error; err != nil {
				log.Fatal(err)
			}
		}
	}

	log.Println("Creating holidays...")
	nextMonth := time.Now().AddDate(0, 1, 0)
	db.Create(&domain.Holiday{
		BusinessID: salon.ID,
		StartDate:  time.Date(nextMonth.Year(), nextMonth.Month(), 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(nextMonth.Year(), nextMonth.Month(), 3, 0, 0, 0, 0, time.UTC),
		Reason:     "Renovation",
	})

	log.Println("Seed complete")
}
