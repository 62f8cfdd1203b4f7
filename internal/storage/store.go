package storage

import (
	"errors"
	"sync"

	"github.com/barbearia-app/barbearia-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no row. The database
// store maps gorm.ErrRecordNotFound onto it so callers can use
// errors.Is regardless of the backing implementation.
var ErrNotFound = errors.New("record not found")

var (
	storeInstance Store
	storeMu       sync.RWMutex
)

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeMu.Lock()
	defer storeMu.Unlock()
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	GetAllUsers() ([]*models.User, error)

	// Service catalog operations
	CreateService(service *models.Service) (*models.Service, error)
	GetServiceByID(id uint) (*models.Service, error)
	GetActiveServices() ([]*models.Service, error)
	DeactivateService(id uint) error

	// Barber catalog operations
	CreateBarber(barber *models.Barber) (*models.Barber, error)
	GetBarberByID(id uint) (*models.Barber, error)
	GetActiveBarbers() ([]*models.Barber, error)
	DeactivateBarber(id uint) error

	// Appointment operations
	CreateAppointment(appointment *models.Appointment) (*models.Appointment, error)
	GetAppointmentByUser(id, userID uint) (*models.Appointment, error)
	GetAppointmentDetailsByUser(userID uint) ([]*models.AppointmentDetail, error)
	GetAllAppointmentDetails() ([]*models.AppointmentDetail, error)
	HasAppointmentConflict(barberID uint, date, timeSlot string) (bool, error)
	CancelAppointment(id uint) error
	GetMetrics(today string) (*models.Metrics, error)

	// Conversation session operations
	GetSession(phone string) (*models.ConversationSession, error)
	CreateSession(phone string) (*models.ConversationSession, error)
	UpdateSession(session *models.ConversationSession) error
	DeleteSession(phone string) error

	// WhatsApp user operations
	GetWhatsAppUserByPhone(phone string) (*models.WhatsAppUser, error)
	CreateWhatsAppUser(wu *models.WhatsAppUser) (*models.WhatsAppUser, error)
}
