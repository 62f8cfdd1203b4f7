package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barbearia-app/barbearia-backend/internal/storage"
)

// CatalogHandler serves the public service and barber listings
type CatalogHandler struct {
	store storage.Store
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store storage.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// GetServices lists active services
func (h *CatalogHandler) GetServices(c *fiber.Ctx) error {
	services, err := h.store.GetActiveServices()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar serviços",
		})
	}
	return c.JSON(services)
}

// GetBarbers lists active barbers
func (h *CatalogHandler) GetBarbers(c *fiber.Ctx) error {
	barbers, err := h.store.GetActiveBarbers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar barbeiros",
		})
	}
	return c.JSON(barbers)
}
