package models

import "gorm.io/gorm"

// User represents an account that can book appointments.
// Users either register through the app or are auto-provisioned the
// first time a WhatsApp conversation confirms a booking.
type User struct {
	gorm.Model

	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Phone    string `json:"phone"` // WhatsApp identity key, digits only
	Role     string `json:"role" gorm:"default:client"`
}

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// UserRegistration is the payload for POST /auth/register
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// WhatsAppUser tracks chat-originated users separately from
// app-registered ones. Created once per phone, never updated.
type WhatsAppUser struct {
	gorm.Model

	Phone string `json:"phone" gorm:"uniqueIndex"`
	Name  string `json:"name"`
}
