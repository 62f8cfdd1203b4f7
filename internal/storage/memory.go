package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/barbearia-app/barbearia-backend/internal/models"
)

// MemoryStore holds all data in memory. Used for tests and when
// USE_MEMORY_STORE=true (no database required).
type MemoryStore struct {
	users        map[uint]*models.User
	services     map[uint]*models.Service
	barbers      map[uint]*models.Barber
	appointments map[uint]*models.Appointment
	sessions     map[string]*models.ConversationSession
	chatUsers    map[string]*models.WhatsAppUser

	mu sync.RWMutex

	// Counters for ID generation
	userCounter        uint
	serviceCounter     uint
	barberCounter      uint
	appointmentCounter uint
	sessionCounter     uint
	chatUserCounter    uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[uint]*models.User),
		services:     make(map[uint]*models.Service),
		barbers:      make(map[uint]*models.Barber),
		appointments: make(map[uint]*models.Appointment),
		sessions:     make(map[string]*models.ConversationSession),
		chatUsers:    make(map[string]*models.WhatsAppUser),
	}
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.userCounter++
	user.ID = m.userCounter
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Role == "" {
		user.Role = models.RoleClient
	}

	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByPhone(phone string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllUsers() ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// Service catalog operations

func (m *MemoryStore) CreateService(service *models.Service) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.serviceCounter++
	service.ID = m.serviceCounter
	service.Active = true
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt

	m.services[service.ID] = service
	return service, nil
}

func (m *MemoryStore) GetServiceByID(id uint) (*models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	service, exists := m.services[id]
	if !exists {
		return nil, ErrNotFound
	}
	return service, nil
}

func (m *MemoryStore) GetActiveServices() ([]*models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var services []*models.Service
	for _, service := range m.services {
		if service.Active {
			services = append(services, service)
		}
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].Name != services[j].Name {
			return services[i].Name < services[j].Name
		}
		return services[i].ID < services[j].ID
	})
	return services, nil
}

func (m *MemoryStore) DeactivateService(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if service, exists := m.services[id]; exists {
		service.Active = false
		service.UpdatedAt = time.Now()
	}
	return nil
}

// Barber catalog operations

func (m *MemoryStore) CreateBarber(barber *models.Barber) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.barberCounter++
	barber.ID = m.barberCounter
	barber.Active = true
	barber.CreatedAt = time.Now()
	barber.UpdatedAt = barber.CreatedAt

	m.barbers[barber.ID] = barber
	return barber, nil
}

func (m *MemoryStore) GetBarberByID(id uint) (*models.Barber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	barber, exists := m.barbers[id]
	if !exists {
		return nil, ErrNotFound
	}
	return barber, nil
}

func (m *MemoryStore) GetActiveBarbers() ([]*models.Barber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var barbers []*models.Barber
	for _, barber := range m.barbers {
		if barber.Active {
			barbers = append(barbers, barber)
		}
	}
	sort.Slice(barbers, func(i, j int) bool {
		if barbers[i].Name != barbers[j].Name {
			return barbers[i].Name < barbers[j].Name
		}
		return barbers[i].ID < barbers[j].ID
	})
	return barbers, nil
}

func (m *MemoryStore) DeactivateBarber(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if barber, exists := m.barbers[id]; exists {
		barber.Active = false
		barber.UpdatedAt = time.Now()
	}
	return nil
}

// Appointment operations

func (m *MemoryStore) CreateAppointment(appointment *models.Appointment) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appointmentCounter++
	appointment.ID = m.appointmentCounter
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	if appointment.Status == "" {
		appointment.Status = models.AppointmentStatusConfirmed
	}
	if appointment.Origin == "" {
		appointment.Origin = models.OriginApp
	}

	m.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (m *MemoryStore) GetAppointmentByUser(id, userID uint) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	appointment, exists := m.appointments[id]
	if !exists || appointment.UserID != userID {
		return nil, ErrNotFound
	}
	return appointment, nil
}

func (m *MemoryStore) detail(a *models.Appointment, withClient bool) *models.AppointmentDetail {
	d := &models.AppointmentDetail{
		ID:        a.ID,
		Date:      a.Date,
		Time:      a.Time,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
	if service, ok := m.services[a.ServiceID]; ok {
		d.ServiceName = service.Name
		d.Price = service.Price
		if !withClient {
			d.Duration = service.Duration
		}
	}
	if barber, ok := m.barbers[a.BarberID]; ok {
		d.BarberName = barber.Name
	}
	if withClient {
		if user, ok := m.users[a.UserID]; ok {
			d.ClientName = user.Name
			d.ClientPhone = user.Phone
		}
	}
	return d
}

func sortDetails(details []*models.AppointmentDetail) {
	sort.Slice(details, func(i, j int) bool {
		if details[i].Date != details[j].Date {
			return details[i].Date > details[j].Date
		}
		return details[i].Time > details[j].Time
	})
}

func (m *MemoryStore) GetAppointmentDetailsByUser(userID uint) ([]*models.AppointmentDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	details := []*models.AppointmentDetail{}
	for _, a := range m.appointments {
		if a.UserID == userID {
			details = append(details, m.detail(a, false))
		}
	}
	sortDetails(details)
	return details, nil
}

func (m *MemoryStore) GetAllAppointmentDetails() ([]*models.AppointmentDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	details := []*models.AppointmentDetail{}
	for _, a := range m.appointments {
		details = append(details, m.detail(a, true))
	}
	sortDetails(details)
	return details, nil
}

func (m *MemoryStore) HasAppointmentConflict(barberID uint, date, timeSlot string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.appointments {
		if a.BarberID == barberID && a.Date == date && a.Time == timeSlot &&
			a.Status != models.AppointmentStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) CancelAppointment(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if appointment, exists := m.appointments[id]; exists {
		appointment.Status = models.AppointmentStatusCancelled
		appointment.UpdatedAt = time.Now()
	}
	return nil
}

func (m *MemoryStore) GetMetrics(today string) (*models.Metrics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metrics := &models.Metrics{
		TotalAppointments: int64(len(m.appointments)),
		TopServices:       []models.ServiceUsage{},
	}

	usage := make(map[string]int64)
	for _, a := range m.appointments {
		if a.Status == models.AppointmentStatusCancelled {
			continue
		}
		if a.Date == today {
			metrics.TodayAppointments++
		}
		service, ok := m.services[a.ServiceID]
		if !ok {
			continue
		}
		usage[service.Name]++
		if a.Status == models.AppointmentStatusConfirmed {
			metrics.EstimatedRevenue += service.Price
		}
	}

	for name, count := range usage {
		metrics.TopServices = append(metrics.TopServices, models.ServiceUsage{Name: name, Count: count})
	}
	sort.Slice(metrics.TopServices, func(i, j int) bool {
		if metrics.TopServices[i].Count != metrics.TopServices[j].Count {
			return metrics.TopServices[i].Count > metrics.TopServices[j].Count
		}
		return metrics.TopServices[i].Name < metrics.TopServices[j].Name
	})
	if len(metrics.TopServices) > 5 {
		metrics.TopServices = metrics.TopServices[:5]
	}

	return metrics, nil
}

// Conversation session operations

func (m *MemoryStore) GetSession(phone string) (*models.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[phone]
	if !exists {
		return nil, ErrNotFound
	}
	return session, nil
}

func (m *MemoryStore) CreateSession(phone string) (*models.ConversationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessionCounter++
	session := &models.ConversationSession{
		Phone: phone,
		Step:  models.StepMenu,
	}
	session.ID = m.sessionCounter
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt

	m.sessions[phone] = session
	return session, nil
}

func (m *MemoryStore) UpdateSession(session *models.ConversationSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.UpdatedAt = time.Now()
	m.sessions[session.Phone] = session
	return nil
}

func (m *MemoryStore) DeleteSession(phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, phone)
	return nil
}

// WhatsApp user operations

func (m *MemoryStore) GetWhatsAppUserByPhone(phone string) (*models.WhatsAppUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wu, exists := m.chatUsers[phone]
	if !exists {
		return nil, ErrNotFound
	}
	return wu, nil
}

func (m *MemoryStore) CreateWhatsAppUser(wu *models.WhatsAppUser) (*models.WhatsAppUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chatUserCounter++
	wu.ID = m.chatUserCounter
	wu.CreatedAt = time.Now()
	wu.UpdatedAt = wu.CreatedAt

	m.chatUsers[wu.Phone] = wu
	return wu, nil
}
