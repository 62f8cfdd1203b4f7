package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/barbearia-app/barbearia-backend/internal/models"
)

// DatabaseStore implements Store backed by PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store using the given GORM connection
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetAllUsers() ([]*models.User, error) {
	var users []*models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Service catalog operations

func (s *DatabaseStore) CreateService(service *models.Service) (*models.Service, error) {
	service.Active = true
	if err := s.db.Create(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

func (s *DatabaseStore) GetServiceByID(id uint) (*models.Service, error) {
	var service models.Service
	if err := s.db.First(&service, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &service, nil
}

func (s *DatabaseStore) GetActiveServices() ([]*models.Service, error) {
	var services []*models.Service
	if err := s.db.Where("active = ?", true).Order("name").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *DatabaseStore) DeactivateService(id uint) error {
	return s.db.Model(&models.Service{}).Where("id = ?", id).Update("active", false).Error
}

// Barber catalog operations

func (s *DatabaseStore) CreateBarber(barber *models.Barber) (*models.Barber, error) {
	barber.Active = true
	if err := s.db.Create(barber).Error; err != nil {
		return nil, err
	}
	return barber, nil
}

func (s *DatabaseStore) GetBarberByID(id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := s.db.First(&barber, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &barber, nil
}

func (s *DatabaseStore) GetActiveBarbers() ([]*models.Barber, error) {
	var barbers []*models.Barber
	if err := s.db.Where("active = ?", true).Order("name").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (s *DatabaseStore) DeactivateBarber(id uint) error {
	return s.db.Model(&models.Barber{}).Where("id = ?", id).Update("active", false).Error
}

// Appointment operations

func (s *DatabaseStore) CreateAppointment(appointment *models.Appointment) (*models.Appointment, error) {
	if err := s.db.Create(appointment).Error; err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *DatabaseStore) GetAppointmentByUser(id, userID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&appointment).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &appointment, nil
}

func (s *DatabaseStore) GetAppointmentDetailsByUser(userID uint) ([]*models.AppointmentDetail, error) {
	var details []*models.AppointmentDetail
	err := s.db.Table("appointments a").
		Select(`a.id, a.date, a.time, a.status, a.created_at,
			s.name AS service_name, s.price, s.duration,
			b.name AS barber_name`).
		Joins("JOIN services s ON a.service_id = s.id").
		Joins("JOIN barbers b ON a.barber_id = b.id").
		Where("a.user_id = ?", userID).
		Order("a.date DESC, a.time DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *DatabaseStore) GetAllAppointmentDetails() ([]*models.AppointmentDetail, error) {
	var details []*models.AppointmentDetail
	err := s.db.Table("appointments a").
		Select(`a.id, a.date, a.time, a.status, a.created_at,
			u.name AS client_name, u.phone AS client_phone,
			s.name AS service_name, s.price,
			b.name AS barber_name`).
		Joins("JOIN users u ON a.user_id = u.id").
		Joins("JOIN services s ON a.service_id = s.id").
		Joins("JOIN barbers b ON a.barber_id = b.id").
		Order("a.date DESC, a.time DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

// HasAppointmentConflict reports whether a non-cancelled appointment
// already occupies the (barber, date, time) slot. Check-then-insert is
// not atomic: two racing bookings can both pass before either inserts.
func (s *DatabaseStore) HasAppointmentConflict(barberID uint, date, timeSlot string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ? AND time = ? AND status <> ?",
			barberID, date, timeSlot, models.AppointmentStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *DatabaseStore) CancelAppointment(id uint) error {
	return s.db.Model(&models.Appointment{}).Where("id = ?", id).
		Update("status", models.AppointmentStatusCancelled).Error
}

func (s *DatabaseStore) GetMetrics(today string) (*models.Metrics, error) {
	metrics := &models.Metrics{}

	if err := s.db.Model(&models.Appointment{}).Count(&metrics.TotalAppointments).Error; err != nil {
		return nil, err
	}

	err := s.db.Model(&models.Appointment{}).
		Where("date = ? AND status <> ?", today, models.AppointmentStatusCancelled).
		Count(&metrics.TodayAppointments).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Table("appointments a").
		Joins("JOIN services s ON a.service_id = s.id").
		Where("a.status = ?", models.AppointmentStatusConfirmed).
		Select("COALESCE(SUM(s.price), 0)").
		Scan(&metrics.EstimatedRevenue).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Table("appointments a").
		Joins("JOIN services s ON a.service_id = s.id").
		Where("a.status <> ?", models.AppointmentStatusCancelled).
		Select("s.name, COUNT(*) AS count").
		Group("s.name").
		Order("count DESC").
		Limit(5).
		Scan(&metrics.TopServices).Error
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

// Conversation session operations

func (s *DatabaseStore) GetSession(phone string) (*models.ConversationSession, error) {
	var session models.ConversationSession
	if err := s.db.Where("phone = ?", phone).First(&session).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &session, nil
}

func (s *DatabaseStore) CreateSession(phone string) (*models.ConversationSession, error) {
	session := &models.ConversationSession{
		Phone: phone,
		Step:  models.StepMenu,
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DatabaseStore) UpdateSession(session *models.ConversationSession) error {
	return s.db.Save(session).Error
}

// DeleteSession removes the session row for a phone. Deleting a
// session that does not exist is a no-op.
func (s *DatabaseStore) DeleteSession(phone string) error {
	return s.db.Unscoped().Where("phone = ?", phone).
		Delete(&models.ConversationSession{}).Error
}

// WhatsApp user operations

func (s *DatabaseStore) GetWhatsAppUserByPhone(phone string) (*models.WhatsAppUser, error) {
	var wu models.WhatsAppUser
	if err := s.db.Where("phone = ?", phone).First(&wu).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &wu, nil
}

func (s *DatabaseStore) CreateWhatsAppUser(wu *models.WhatsAppUser) (*models.WhatsAppUser, error) {
	if err := s.db.Create(wu).Error; err != nil {
		return nil, err
	}
	return wu, nil
}
