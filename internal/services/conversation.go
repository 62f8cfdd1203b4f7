package services

import (
	"errors"
	"log"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/barbearia-app/barbearia-backend/internal/models"
	"github.com/barbearia-app/barbearia-backend/internal/storage"
)

// ConversationService drives the WhatsApp booking conversation. Each
// phone number has one persisted session that walks a fixed pipeline:
// menu -> service -> barber -> date -> time -> confirm. Any rejected
// input re-prompts without losing data already collected. Confirming
// or declining deletes the session, so the next message starts over.
type ConversationService struct {
	store           storage.Store
	defaultPassword string

	// One mutex per phone so near-simultaneous messages from the same
	// number cannot race on the session read-modify-write. Messages
	// from different phones still run concurrently.
	locks sync.Map
}

// NewConversationService creates the conversation engine.
// defaultPassword is the credential given to users auto-provisioned
// from a chat booking.
func NewConversationService(store storage.Store, defaultPassword string) *ConversationService {
	return &ConversationService{
		store:           store,
		defaultPassword: defaultPassword,
	}
}

func (s *ConversationService) phoneLock(phone string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(phone, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ProcessMessage runs one transition of the conversation and returns
// the reply text. A returned error means a store failure; validation
// problems never surface as errors, they produce a re-prompt reply.
func (s *ConversationService) ProcessMessage(phone, text string) (string, error) {
	mu := s.phoneLock(phone)
	mu.Lock()
	defer mu.Unlock()

	msg := strings.TrimSpace(text)
	log.Printf("💬 Processing message from %s", phone)

	session, err := s.store.GetSession(phone)
	if errors.Is(err, storage.ErrNotFound) {
		session, err = s.store.CreateSession(phone)
	}
	if err != nil {
		return "", err
	}

	switch session.Step {
	case models.StepMenu:
		return s.handleMenu(session, msg)
	case models.StepService:
		return s.handleService(session, msg)
	case models.StepBarber:
		return s.handleBarber(session, msg)
	case models.StepDate:
		return s.handleDate(session, msg)
	case models.StepTime:
		return s.handleTime(session, msg)
	case models.StepConfirm:
		return s.handleConfirm(session, msg)
	default:
		return msgMenuFallback, nil
	}
}

// advance persists the session at its next step with the data
// collected so far
func (s *ConversationService) advance(session *models.ConversationSession, step string, data *models.BookingData) error {
	if err := session.SetBookingData(data); err != nil {
		return err
	}
	session.Step = step
	return s.store.UpdateSession(session)
}

func (s *ConversationService) handleMenu(session *models.ConversationSession, msg string) (string, error) {
	if msg != "1" {
		return msgWelcome, nil
	}

	if err := s.advance(session, models.StepService, &models.BookingData{}); err != nil {
		return "", err
	}
	services, err := s.store.GetActiveServices()
	if err != nil {
		return "", err
	}
	return renderServiceList(services), nil
}

func (s *ConversationService) handleService(session *models.ConversationSession, msg string) (string, error) {
	// Listing is re-fetched fresh, so the chosen number is positional
	// against the current catalog, not the one shown earlier.
	services, err := s.store.GetActiveServices()
	if err != nil {
		return "", err
	}

	idx, err := parseIndex(msg, len(services))
	if err != nil {
		return msgInvalidOption, nil
	}

	data, err := session.BookingData()
	if err != nil {
		return "", err
	}
	data.ServiceID = services[idx].ID

	if err := s.advance(session, models.StepBarber, data); err != nil {
		return "", err
	}
	barbers, err := s.store.GetActiveBarbers()
	if err != nil {
		return "", err
	}
	return renderBarberList(barbers), nil
}

func (s *ConversationService) handleBarber(session *models.ConversationSession, msg string) (string, error) {
	barbers, err := s.store.GetActiveBarbers()
	if err != nil {
		return "", err
	}

	idx, err := parseIndex(msg, len(barbers))
	if err != nil {
		return msgInvalidOption, nil
	}

	data, err := session.BookingData()
	if err != nil {
		return "", err
	}
	data.BarberID = barbers[idx].ID

	if err := s.advance(session, models.StepDate, data); err != nil {
		return "", err
	}
	return msgDatePrompt, nil
}

func (s *ConversationService) handleDate(session *models.ConversationSession, msg string) (string, error) {
	isoDate, err := parseDate(msg)
	if err != nil {
		return msgInvalidDate, nil
	}

	data, err := session.BookingData()
	if err != nil {
		return "", err
	}
	data.Date = isoDate

	if err := s.advance(session, models.StepTime, data); err != nil {
		return "", err
	}
	return msgTimePrompt, nil
}

func (s *ConversationService) handleTime(session *models.ConversationSession, msg string) (string, error) {
	timeSlot, err := parseTime(msg)
	if err != nil {
		return msgInvalidTime, nil
	}

	data, err := session.BookingData()
	if err != nil {
		return "", err
	}

	conflict, err := s.store.HasAppointmentConflict(data.BarberID, data.Date, timeSlot)
	if err != nil {
		return "", err
	}
	if conflict {
		return msgSlotTaken, nil
	}

	data.Time = timeSlot
	if err := s.advance(session, models.StepConfirm, data); err != nil {
		return "", err
	}

	service, err := s.store.GetServiceByID(data.ServiceID)
	if err != nil {
		return "", err
	}
	barber, err := s.store.GetBarberByID(data.BarberID)
	if err != nil {
		return "", err
	}
	return renderConfirmation(service, barber, data), nil
}

func (s *ConversationService) handleConfirm(session *models.ConversationSession, msg string) (string, error) {
	if !strings.EqualFold(msg, "SIM") {
		if err := s.store.DeleteSession(session.Phone); err != nil {
			return "", err
		}
		return msgBookingDeclined, nil
	}

	if err := s.commitBooking(session); err != nil {
		return "", err
	}
	return msgBookingConfirmed, nil
}

// commitBooking runs the side effects of a confirmed booking:
// find-or-create the user, find-or-create the WhatsApp user record,
// insert the appointment, delete the session. There is no rollback of
// earlier steps if a later one fails; a retry simply repeats the
// find-or-create steps, which are idempotent.
func (s *ConversationService) commitBooking(session *models.ConversationSession) error {
	phone := session.Phone
	data, err := session.BookingData()
	if err != nil {
		return err
	}

	user, err := s.store.GetUserByPhone(phone)
	if errors.Is(err, storage.ErrNotFound) {
		hash, herr := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			return herr
		}
		user, err = s.store.CreateUser(&models.User{
			Name:     "Cliente " + phone,
			Email:    phone + "@whatsapp.temp",
			Password: string(hash),
			Phone:    phone,
			Role:     models.RoleClient,
		})
		if err == nil {
			log.Printf("👤 Auto-provisioned user for %s", phone)
		}
	}
	if err != nil {
		return err
	}

	if _, werr := s.store.GetWhatsAppUserByPhone(phone); errors.Is(werr, storage.ErrNotFound) {
		if _, cerr := s.store.CreateWhatsAppUser(&models.WhatsAppUser{
			Phone: phone,
			Name:  user.Name,
		}); cerr != nil {
			return cerr
		}
	} else if werr != nil {
		return werr
	}

	_, err = s.store.CreateAppointment(&models.Appointment{
		UserID:    user.ID,
		ServiceID: data.ServiceID,
		BarberID:  data.BarberID,
		Date:      data.Date,
		Time:      data.Time,
		Status:    models.AppointmentStatusConfirmed,
		Origin:    models.OriginWhatsApp,
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Booking confirmed via WhatsApp for %s (%s %s)", phone, data.Date, data.Time)
	return s.store.DeleteSession(phone)
}
