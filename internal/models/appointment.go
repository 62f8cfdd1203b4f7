package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment represents a booked slot with a barber.
// Date and Time are stored in ISO form ("2006-01-02" / "15:04") so
// string comparison in the conflict check matches chronological order.
type Appointment struct {
	gorm.Model

	UserID    uint   `json:"user_id"`
	ServiceID uint   `json:"service_id"`
	BarberID  uint   `json:"barber_id"`
	Date      string `json:"date"` // "2006-01-02"
	Time      string `json:"time"` // "15:04"
	Status    string `json:"status" gorm:"default:confirmed"`
	Origin    string `json:"origin" gorm:"default:app"`
}

// Appointment status constants. Cancelled appointments stay in the
// table; they just stop counting against the slot.
const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"

	OriginApp      = "app"
	OriginWhatsApp = "whatsapp"
)

// AppointmentInput is the payload for POST /appointments
type AppointmentInput struct {
	ServiceID uint   `json:"service_id"`
	BarberID  uint   `json:"barber_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// AppointmentDetail is the joined read model returned by the listing
// endpoints (own appointments and the admin view).
type AppointmentDetail struct {
	ID          uint      `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ServiceName string    `json:"service_name"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration,omitempty"`
	BarberName  string    `json:"barber_name"`
	ClientName  string    `json:"client_name,omitempty"`
	ClientPhone string    `json:"client_phone,omitempty"`
}
