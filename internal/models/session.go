package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// ConversationSession stores the per-phone state of an in-progress
// WhatsApp booking conversation. There is no terminal step: a
// confirmed or declined booking deletes the row, and the next message
// from that phone starts over at the menu.
type ConversationSession struct {
	gorm.Model

	Phone string `json:"phone" gorm:"uniqueIndex"`
	Step  string `json:"step" gorm:"default:menu"`
	Data  string `json:"data"` // JSON-encoded BookingData
}

// Conversation steps, in pipeline order
const (
	StepMenu    = "menu"
	StepService = "service"
	StepBarber  = "barber"
	StepDate    = "date"
	StepTime    = "time"
	StepConfirm = "confirm"
)

// BookingData holds the fields collected so far during a conversation.
// Keys are only present once the corresponding step has been answered.
type BookingData struct {
	ServiceID uint   `json:"service_id,omitempty"`
	BarberID  uint   `json:"barber_id,omitempty"`
	Date      string `json:"date,omitempty"` // ISO "2006-01-02"
	Time      string `json:"time,omitempty"` // "15:04"
}

// BookingData decodes the session's Data field. An empty field yields
// a zero value rather than an error.
func (s *ConversationSession) BookingData() (*BookingData, error) {
	data := &BookingData{}
	if s.Data == "" {
		return data, nil
	}
	if err := json.Unmarshal([]byte(s.Data), data); err != nil {
		return nil, err
	}
	return data, nil
}

// SetBookingData encodes data back into the session
func (s *ConversationSession) SetBookingData(data *BookingData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.Data = string(raw)
	return nil
}
