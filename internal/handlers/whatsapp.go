package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/barbearia-app/barbearia-backend/internal/services"
)

// WhatsAppHandler processes inbound Evolution webhook events
type WhatsAppHandler struct {
	conversation *services.ConversationService
	sender       services.MessageSender
}

// NewWhatsAppHandler creates a new WhatsApp webhook handler
func NewWhatsAppHandler(conversation *services.ConversationService, sender services.MessageSender) *WhatsAppHandler {
	return &WhatsAppHandler{
		conversation: conversation,
		sender:       sender,
	}
}

// EvolutionWebhookPayload is the inbound event shape from Evolution.
// Plain messages arrive in Conversation; quoted/link-preview messages
// arrive in ExtendedTextMessage.Text.
type EvolutionWebhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Key struct {
			RemoteJid string `json:"remoteJid"`
		} `json:"key"`
		Message struct {
			Conversation        string `json:"conversation"`
			ExtendedTextMessage struct {
				Text string `json:"text"`
			} `json:"extendedTextMessage"`
		} `json:"message"`
	} `json:"data"`
}

// HandleWebhook processes an inbound WhatsApp message and sends the
// conversation's reply back through the delivery gateway
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload EvolutionWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	if payload.Event != "messages.upsert" {
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	phone := strings.TrimSuffix(payload.Data.Key.RemoteJid, "@s.whatsapp.net")
	text := payload.Data.Message.Conversation
	if text == "" {
		text = payload.Data.Message.ExtendedTextMessage.Text
	}

	if phone == "" || text == "" {
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	log.Printf("📱 WhatsApp message from %s: %s", phone, text)

	response, err := h.conversation.ProcessMessage(phone, text)
	if err != nil {
		log.Printf("Error processing message: %v", err)
		response = services.GenericErrorReply
	}

	// Fire-and-forget: the delivery result is logged by the sender
	// but does not change the webhook response.
	h.sender.SendText(phone, response)

	return c.JSON(fiber.Map{"status": "processed"})
}
