package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/barbearia-app/barbearia-backend/internal/models"
	"github.com/barbearia-app/barbearia-backend/internal/storage"
)

// AdminHandler handles the admin dashboard and catalog management
type AdminHandler struct {
	store storage.Store
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store storage.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

// GetMetrics returns the dashboard summary: totals, today's count,
// estimated revenue and the five most-booked services
func (h *AdminHandler) GetMetrics(c *fiber.Ctx) error {
	today := time.Now().Format("2006-01-02")

	metrics, err := h.store.GetMetrics(today)
	if err != nil {
		log.Printf("❌ Failed to compute metrics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar métricas",
		})
	}
	return c.JSON(metrics)
}

// GetAllAppointments lists every appointment with client, service and
// barber details
func (h *AdminHandler) GetAllAppointments(c *fiber.Ctx) error {
	appointments, err := h.store.GetAllAppointmentDetails()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar agendamentos",
		})
	}
	return c.JSON(appointments)
}

// GetUsers lists all registered users
func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.store.GetAllUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar usuários",
		})
	}
	return c.JSON(users)
}

// CreateService adds a catalog service
func (h *AdminHandler) CreateService(c *fiber.Ctx) error {
	var req models.ServiceInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dados incompletos",
		})
	}

	if req.Name == "" || req.Price == 0 || req.Duration == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dados incompletos",
		})
	}

	_, err := h.store.CreateService(&models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao criar serviço",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Serviço criado com sucesso",
	})
}

// DeleteService deactivates a service. The row stays so existing
// appointments keep their join target.
func (h *AdminHandler) DeleteService(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dados incompletos",
		})
	}

	if err := h.store.DeactivateService(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao remover serviço",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Serviço removido",
	})
}

// CreateBarber adds a barber to the catalog
func (h *AdminHandler) CreateBarber(c *fiber.Ctx) error {
	var req models.BarberInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nome obrigatório",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nome obrigatório",
		})
	}

	_, err := h.store.CreateBarber(&models.Barber{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao cadastrar barbeiro",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Barbeiro cadastrado com sucesso",
	})
}

// DeleteBarber deactivates a barber
func (h *AdminHandler) DeleteBarber(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dados incompletos",
		})
	}

	if err := h.store.DeactivateBarber(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao remover barbeiro",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Barbeiro removido",
	})
}
