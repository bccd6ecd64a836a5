package domain

import "time"

type BusinessCategory string

const (
	CategorySalon  BusinessCategory = "salon"
	CategoryClinic BusinessCategory = "clinic"
	CategoryCourt  BusinessCategory = "court"
)

type Business struct {
	ID                     int64            `gorm:"primaryKey" json:"id"`
	OwnerUserID            int64            `gorm:"index;not null" json:"owner_user_id"`
	Name                   string           `gorm:"type:varchar(255);not null" json:"name"`
	Category               BusinessCategory `gorm:"type:varchar(32);not null" json:"category"`
	Suspended              bool             `gorm:"default:false" json:"suspended"`
	RequiresConsentForm    bool             `gorm:"default:false" json:"requires_consent_form"`
	DefaultDurationMinutes int              `gorm:"default:60" json:"default_duration_minutes"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

func (Business) TableName() string { return "businesses" }

type Employee struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	BusinessID int64     `gorm:"index;not null" json:"business_id"`
	UserID     int64     `gorm:"index;not null" json:"user_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Employee) TableName() string { return "employees" }

// ServiceOffering is a bookable service of a salon/clinic business.
type ServiceOffering struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	BusinessID      int64     `gorm:"index;not null" json:"business_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Price           int64     `gorm:"not null" json:"price"` // minor units
	CreatedAt       time.Time `json:"created_at"`
}

func (ServiceOffering) TableName() string { return "service_offerings" }

type Court struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	BusinessID      int64     `gorm:"index;not null" json:"business_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	DurationMinutes int       `gorm:"default:60" json:"duration_minutes"`
	PricePerHour    int64     `gorm:"not null" json:"price_per_hour"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Court) TableName() string { return "courts" }

// ConsentRecord is the signed consent form tied to a pending_consent booking.
// Deleted together with an unpaid booking on cancellation.
type ConsentRecord struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	BookingID int64      `gorm:"uniqueIndex;not null" json:"booking_id"`
	ClientID  int64      `gorm:"index;not null" json:"client_id"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (ConsentRecord) TableName() string { return "consent_records" }
