package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-app/barbearia-backend/internal/models"
	"github.com/barbearia-app/barbearia-backend/internal/storage"
)

const testPhone = "5511999999"

// newTestEngine seeds a memory store with two services and two
// barbers. Listings are ordered by name, so position 1 is "Barba" and
// barber 1 is "Carlos".
func newTestEngine(t *testing.T) (*ConversationService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()

	_, err := store.CreateService(&models.Service{Name: "Corte de Cabelo", Price: 35, Duration: 30})
	require.NoError(t, err)
	_, err = store.CreateService(&models.Service{Name: "Barba", Price: 25, Duration: 20})
	require.NoError(t, err)

	_, err = store.CreateBarber(&models.Barber{Name: "Carlos"})
	require.NoError(t, err)
	_, err = store.CreateBarber(&models.Barber{Name: "João"})
	require.NoError(t, err)

	return NewConversationService(store, "whatsapp123"), store
}

// drive feeds a sequence of messages and returns the last reply
func drive(t *testing.T, svc *ConversationService, phone string, inputs ...string) string {
	t.Helper()
	var reply string
	var err error
	for _, in := range inputs {
		reply, err = svc.ProcessMessage(phone, in)
		require.NoError(t, err)
	}
	return reply
}

func sessionStep(t *testing.T, store *storage.MemoryStore, phone string) string {
	t.Helper()
	session, err := store.GetSession(phone)
	require.NoError(t, err)
	return session.Step
}

func TestFirstContactCreatesMenuSession(t *testing.T) {
	svc, store := newTestEngine(t)

	reply := drive(t, svc, testPhone, "oi, tudo bem?")

	assert.Equal(t, msgWelcome, reply)
	assert.Equal(t, models.StepMenu, sessionStep(t, store, testPhone))
}

func TestMenuOptionOneListsServices(t *testing.T) {
	svc, store := newTestEngine(t)

	reply := drive(t, svc, testPhone, "1")

	assert.Contains(t, reply, "Serviços Disponíveis")
	assert.Contains(t, reply, "1. Barba - R$ 25.00 (20 min)")
	assert.Contains(t, reply, "2. Corte de Cabelo - R$ 35.00 (30 min)")
	assert.Equal(t, models.StepService, sessionStep(t, store, testPhone))
}

func TestInvalidServiceSelectionKeepsState(t *testing.T) {
	svc, store := newTestEngine(t)
	drive(t, svc, testPhone, "1")

	for _, input := range []string{"0", "3", "abc", "1.5", ""} {
		reply := drive(t, svc, testPhone, input)
		assert.Equal(t, msgInvalidOption, reply, "input %q", input)
		assert.Equal(t, models.StepService, sessionStep(t, store, testPhone))
	}
}

func TestInvalidBarberSelectionKeepsState(t *testing.T) {
	svc, store := newTestEngine(t)
	drive(t, svc, testPhone, "1", "1")

	reply := drive(t, svc, testPhone, "9")

	assert.Equal(t, msgInvalidOption, reply)
	assert.Equal(t, models.StepBarber, sessionStep(t, store, testPhone))
}

func TestBarberSelectionPromptsForDate(t *testing.T) {
	svc, store := newTestEngine(t)

	reply := drive(t, svc, testPhone, "1", "1", "1")

	assert.Equal(t, msgDatePrompt, reply)
	assert.Equal(t, models.StepDate, sessionStep(t, store, testPhone))

	session, err := store.GetSession(testPhone)
	require.NoError(t, err)
	data, err := session.BookingData()
	require.NoError(t, err)
	assert.NotZero(t, data.ServiceID)
	assert.NotZero(t, data.BarberID)
}

func TestDateValidation(t *testing.T) {
	svc, store := newTestEngine(t)
	drive(t, svc, testPhone, "1", "1", "1")

	for _, input := range []string{"2026-01-25", "25/1/2026", "banana", "32/01/2026", "25/01/26"} {
		reply := drive(t, svc, testPhone, input)
		assert.Equal(t, msgInvalidDate, reply, "input %q", input)
		assert.Equal(t, models.StepDate, sessionStep(t, store, testPhone))
	}

	reply := drive(t, svc, testPhone, "25/01/2026")
	assert.Equal(t, msgTimePrompt, reply)

	session, err := store.GetSession(testPhone)
	require.NoError(t, err)
	data, err := session.BookingData()
	require.NoError(t, err)
	assert.Equal(t, "2026-01-25", data.Date)
}

func TestTimeValidation(t *testing.T) {
	svc, store := newTestEngine(t)
	drive(t, svc, testPhone, "1", "1", "1", "25/01/2026")

	for _, input := range []string{"9:30", "25:00", "14:60", "nope", "14h30"} {
		reply := drive(t, svc, testPhone, input)
		assert.Equal(t, msgInvalidTime, reply, "input %q", input)
		assert.Equal(t, models.StepTime, sessionStep(t, store, testPhone))
	}
}

func TestOccupiedSlotIsRejected(t *testing.T) {
	svc, store := newTestEngine(t)

	// Barber 1 is already booked at 14:30 on that day
	_, err := store.CreateAppointment(&models.Appointment{
		UserID:    1,
		ServiceID: 1,
		BarberID:  1,
		Date:      "2026-01-25",
		Time:      "14:30",
		Status:    models.AppointmentStatusConfirmed,
	})
	require.NoError(t, err)

	drive(t, svc, testPhone, "1", "1", "1", "25/01/2026")

	reply := drive(t, svc, testPhone, "14:30")
	assert.Equal(t, msgSlotTaken, reply)
	assert.Equal(t, models.StepTime, sessionStep(t, store, testPhone))

	// A free slot right after still works
	reply = drive(t, svc, testPhone, "15:00")
	assert.Contains(t, reply, "Confirme seu agendamento")
	assert.Equal(t, models.StepConfirm, sessionStep(t, store, testPhone))
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	svc, store := newTestEngine(t)

	appointment, err := store.CreateAppointment(&models.Appointment{
		UserID:    1,
		ServiceID: 1,
		BarberID:  1,
		Date:      "2026-01-25",
		Time:      "14:30",
		Status:    models.AppointmentStatusConfirmed,
	})
	require.NoError(t, err)
	require.NoError(t, store.CancelAppointment(appointment.ID))

	reply := drive(t, svc, testPhone, "1", "1", "1", "25/01/2026", "14:30")
	assert.Contains(t, reply, "Confirme seu agendamento")
}

func TestConfirmationSummaryRoundTripsDate(t *testing.T) {
	svc, _ := newTestEngine(t)

	reply := drive(t, svc, testPhone, "1", "1", "1", "25/01/2026", "14:30")

	// The date entered as DD/MM/YYYY is stored as ISO and rendered
	// back in DD/MM/YYYY form.
	assert.Contains(t, reply, "📅 Data: 25/01/2026")
	assert.Contains(t, reply, "📋 Serviço: Barba")
	assert.Contains(t, reply, "💈 Barbeiro: Carlos")
	assert.Contains(t, reply, "🕐 Horário: 14:30")
	assert.Contains(t, reply, "💰 Valor: R$ 25.00")
}

func TestConfirmBookingEndToEnd(t *testing.T) {
	svc, store := newTestEngine(t)

	reply := drive(t, svc, testPhone, "1", "1", "1", "25/01/2026", "14:30", "SIM")
	assert.Equal(t, msgBookingConfirmed, reply)

	// The user was auto-provisioned from the phone
	user, err := store.GetUserByPhone(testPhone)
	require.NoError(t, err)
	assert.Equal(t, "Cliente "+testPhone, user.Name)
	assert.Equal(t, testPhone+"@whatsapp.temp", user.Email)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.NotEmpty(t, user.Password)
	assert.NotEqual(t, "whatsapp123", user.Password, "password must be hashed")

	// The chat-origin record exists
	wu, err := store.GetWhatsAppUserByPhone(testPhone)
	require.NoError(t, err)
	assert.Equal(t, user.Name, wu.Name)

	// The appointment was created with the collected data
	details, err := store.GetAppointmentDetailsByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "2026-01-25", details[0].Date)
	assert.Equal(t, "14:30", details[0].Time)
	assert.Equal(t, models.AppointmentStatusConfirmed, details[0].Status)

	appointment, err := store.GetAppointmentByUser(details[0].ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OriginWhatsApp, appointment.Origin)

	// The session is gone; the next message starts over at the menu
	_, err = store.GetSession(testPhone)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	reply = drive(t, svc, testPhone, "olá")
	assert.Equal(t, msgWelcome, reply)
}

func TestConfirmIsCaseInsensitive(t *testing.T) {
	svc, store := newTestEngine(t)

	reply := drive(t, svc, testPhone, "1", "1", "1", "25/01/2026", "14:30", "sim")
	assert.Equal(t, msgBookingConfirmed, reply)

	_, err := store.GetSession(testPhone)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeclineDeletesSessionWithoutBooking(t *testing.T) {
	svc, store := newTestEngine(t)

	reply := drive(t, svc, testPhone, "1", "1", "1", "25/01/2026", "14:30", "NAO")
	assert.Equal(t, msgBookingDeclined, reply)

	_, err := store.GetSession(testPhone)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetUserByPhone(testPhone)
	assert.ErrorIs(t, err, storage.ErrNotFound, "no user should be created on decline")

	details, err := store.GetAllAppointmentDetails()
	require.NoError(t, err)
	assert.Empty(t, details, "no appointment should be created on decline")
}

func TestConfirmReusesExistingUser(t *testing.T) {
	svc, store := newTestEngine(t)

	existing, err := store.CreateUser(&models.User{
		Name:  "Maria",
		Email: "maria@example.com",
		Phone: testPhone,
	})
	require.NoError(t, err)

	drive(t, svc, testPhone, "1", "1", "1", "25/01/2026", "14:30", "SIM")

	users, err := store.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1, "existing user must be reused, not duplicated")

	wu, err := store.GetWhatsAppUserByPhone(testPhone)
	require.NoError(t, err)
	assert.Equal(t, existing.Name, wu.Name)
}

func TestWhitespaceIsTrimmed(t *testing.T) {
	svc, store := newTestEngine(t)

	reply := drive(t, svc, testPhone, "  1  ")
	assert.Contains(t, reply, "Serviços Disponíveis")
	assert.Equal(t, models.StepService, sessionStep(t, store, testPhone))
}

// failingStore wraps the memory store and fails session updates to
// exercise the store-error path.
type failingStore struct {
	*storage.MemoryStore
}

func (f *failingStore) UpdateSession(*models.ConversationSession) error {
	return errors.New("connection refused")
}

func TestStoreFailureSurfacesAsError(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewConversationService(&failingStore{store}, "whatsapp123")

	_, err := svc.ProcessMessage(testPhone, "1")
	assert.Error(t, err)
}
