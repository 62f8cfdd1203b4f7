package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/barbearia-app/barbearia-backend/internal/middleware"
	"github.com/barbearia-app/barbearia-backend/internal/models"
	"github.com/barbearia-app/barbearia-backend/internal/storage"
)

// AppointmentHandler handles the authenticated booking API
type AppointmentHandler struct {
	store storage.Store
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(store storage.Store) *AppointmentHandler {
	return &AppointmentHandler{store: store}
}

// GetAppointments lists the caller's own appointments
func (h *AppointmentHandler) GetAppointments(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	appointments, err := h.store.GetAppointmentDetailsByUser(userID)
	if err != nil {
		log.Printf("❌ Failed to list appointments for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar agendamentos",
		})
	}
	return c.JSON(appointments)
}

// CreateAppointment books a slot for the caller. Runs the same
// conflict check as the WhatsApp flow, directly against the
// caller-supplied service, barber, date and time.
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.AppointmentInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dados incompletos",
		})
	}

	if req.ServiceID == 0 || req.BarberID == 0 || req.Date == "" || req.Time == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dados incompletos",
		})
	}

	conflict, err := h.store.HasAppointmentConflict(req.BarberID, req.Date, req.Time)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao criar agendamento",
		})
	}
	if conflict {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Horário indisponível",
		})
	}

	_, err = h.store.CreateAppointment(&models.Appointment{
		UserID:    userID,
		ServiceID: req.ServiceID,
		BarberID:  req.BarberID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    models.AppointmentStatusConfirmed,
		Origin:    models.OriginApp,
	})
	if err != nil {
		log.Printf("❌ Failed to create appointment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao criar agendamento",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Agendamento criado com sucesso",
	})
}

// CancelAppointment cancels one of the caller's appointments. The row
// is kept with status=cancelled, never deleted.
func (h *AppointmentHandler) CancelAppointment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dados incompletos",
		})
	}

	if _, err := h.store.GetAppointmentByUser(uint(id), userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Agendamento não encontrado",
		})
	}

	if err := h.store.CancelAppointment(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao cancelar agendamento",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Agendamento cancelado",
	})
}
