package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-app/barbearia-backend/internal/models"
)

func TestActiveCatalogFiltersAndOrders(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.CreateService(&models.Service{Name: "Corte", Price: 35, Duration: 30})
	require.NoError(t, err)
	barba, err := store.CreateService(&models.Service{Name: "Barba", Price: 25, Duration: 20})
	require.NoError(t, err)
	require.NoError(t, store.DeactivateService(barba.ID))

	services, err := store.GetActiveServices()
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Corte", services[0].Name)

	_, err = store.CreateBarber(&models.Barber{Name: "João"})
	require.NoError(t, err)
	_, err = store.CreateBarber(&models.Barber{Name: "Carlos"})
	require.NoError(t, err)

	barbers, err := store.GetActiveBarbers()
	require.NoError(t, err)
	require.Len(t, barbers, 2)
	assert.Equal(t, "Carlos", barbers[0].Name, "listings are ordered by name")
	assert.Equal(t, "João", barbers[1].Name)
}

func TestAppointmentConflictDetection(t *testing.T) {
	store := NewMemoryStore()

	appointment, err := store.CreateAppointment(&models.Appointment{
		UserID:    1,
		ServiceID: 1,
		BarberID:  1,
		Date:      "2026-01-25",
		Time:      "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, appointment.Status)

	conflict, err := store.HasAppointmentConflict(1, "2026-01-25", "14:30")
	require.NoError(t, err)
	assert.True(t, conflict)

	// Different barber, date or time is free
	for _, tc := range []struct {
		barberID uint
		date     string
		timeSlot string
	}{
		{2, "2026-01-25", "14:30"},
		{1, "2026-01-26", "14:30"},
		{1, "2026-01-25", "15:00"},
	} {
		conflict, err = store.HasAppointmentConflict(tc.barberID, tc.date, tc.timeSlot)
		require.NoError(t, err)
		assert.False(t, conflict)
	}

	// Cancelling frees the slot
	require.NoError(t, store.CancelAppointment(appointment.ID))
	conflict, err = store.HasAppointmentConflict(1, "2026-01-25", "14:30")
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestSessionLifecycle(t *testing.T) {
	store := NewMemoryStore()
	phone := "5511988887777"

	_, err := store.GetSession(phone)
	assert.ErrorIs(t, err, ErrNotFound)

	session, err := store.CreateSession(phone)
	require.NoError(t, err)
	assert.Equal(t, models.StepMenu, session.Step)
	assert.Empty(t, session.Data)

	session.Step = models.StepDate
	require.NoError(t, session.SetBookingData(&models.BookingData{ServiceID: 2, BarberID: 1}))
	require.NoError(t, store.UpdateSession(session))

	loaded, err := store.GetSession(phone)
	require.NoError(t, err)
	assert.Equal(t, models.StepDate, loaded.Step)

	data, err := loaded.BookingData()
	require.NoError(t, err)
	assert.Equal(t, uint(2), data.ServiceID)
	assert.Equal(t, uint(1), data.BarberID)
	assert.Empty(t, data.Date)

	require.NoError(t, store.DeleteSession(phone))
	_, err = store.GetSession(phone)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a session that does not exist is a no-op
	assert.NoError(t, store.DeleteSession(phone))
}

func TestGetMetrics(t *testing.T) {
	store := NewMemoryStore()

	corte, err := store.CreateService(&models.Service{Name: "Corte", Price: 35, Duration: 30})
	require.NoError(t, err)
	barba, err := store.CreateService(&models.Service{Name: "Barba", Price: 25, Duration: 20})
	require.NoError(t, err)

	today := "2026-01-25"
	for _, a := range []*models.Appointment{
		{UserID: 1, ServiceID: corte.ID, BarberID: 1, Date: today, Time: "10:00"},
		{UserID: 1, ServiceID: corte.ID, BarberID: 1, Date: "2026-01-26", Time: "10:00"},
		{UserID: 2, ServiceID: barba.ID, BarberID: 2, Date: today, Time: "11:00"},
	} {
		_, err = store.CreateAppointment(a)
		require.NoError(t, err)
	}

	cancelled, err := store.CreateAppointment(&models.Appointment{
		UserID: 2, ServiceID: barba.ID, BarberID: 2, Date: today, Time: "12:00",
	})
	require.NoError(t, err)
	require.NoError(t, store.CancelAppointment(cancelled.ID))

	metrics, err := store.GetMetrics(today)
	require.NoError(t, err)

	assert.Equal(t, int64(4), metrics.TotalAppointments)
	assert.Equal(t, int64(2), metrics.TodayAppointments)
	assert.Equal(t, float64(35+35+25), metrics.EstimatedRevenue)
	require.Len(t, metrics.TopServices, 2)
	assert.Equal(t, models.ServiceUsage{Name: "Corte", Count: 2}, metrics.TopServices[0])
	assert.Equal(t, models.ServiceUsage{Name: "Barba", Count: 1}, metrics.TopServices[1])
}

func TestAppointmentDetailViews(t *testing.T) {
	store := NewMemoryStore()

	user, err := store.CreateUser(&models.User{Name: "Maria", Email: "maria@example.com", Phone: "551190000000"})
	require.NoError(t, err)
	service, err := store.CreateService(&models.Service{Name: "Corte", Price: 35, Duration: 30})
	require.NoError(t, err)
	barber, err := store.CreateBarber(&models.Barber{Name: "Carlos"})
	require.NoError(t, err)

	_, err = store.CreateAppointment(&models.Appointment{
		UserID: user.ID, ServiceID: service.ID, BarberID: barber.ID,
		Date: "2026-01-25", Time: "14:30",
	})
	require.NoError(t, err)

	own, err := store.GetAppointmentDetailsByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Corte", own[0].ServiceName)
	assert.Equal(t, "Carlos", own[0].BarberName)
	assert.Equal(t, 30, own[0].Duration)
	assert.Empty(t, own[0].ClientName)

	all, err := store.GetAllAppointmentDetails()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Maria", all[0].ClientName)
	assert.Equal(t, "551190000000", all[0].ClientPhone)
}
