package models

import "gorm.io/gorm"

// Service is a bookable catalog item (haircut, beard trim, ...)
type Service struct {
	gorm.Model

	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // in minutes
	Active      bool    `json:"active" gorm:"default:true"`
}

// ServiceInput is the payload for POST /admin/services
type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}
