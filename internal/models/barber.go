package models

import "gorm.io/gorm"

// Barber is a staff member clients can book with
type Barber struct {
	gorm.Model

	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Active bool   `json:"active" gorm:"default:true"`
}

// BarberInput is the payload for POST /admin/barbers
type BarberInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
