package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/barbearia-app/barbearia-backend/internal/models"
)

// Reply texts for the WhatsApp conversation. Prompts that re-ask for
// input after a rejected answer keep the session step unchanged.
const (
	msgWelcome = "🪒 *Bem-vindo à Barbearia!*\n\n1. Agendar horário\n\nDigite *1* para começar:"

	msgInvalidOption = "Opção inválida. Tente novamente:"

	msgDatePrompt   = "📅 *Digite a data desejada:*\n\nFormato: DD/MM/AAAA\nExemplo: 25/01/2026"
	msgInvalidDate  = "Data inválida. Use o formato DD/MM/AAAA\nExemplo: 25/01/2026"
	msgTimePrompt   = "🕐 *Digite o horário desejado:*\n\nFormato: HH:MM\nExemplo: 14:30"
	msgInvalidTime  = "Horário inválido. Use o formato HH:MM\nExemplo: 14:30"
	msgSlotTaken    = "⚠️ Horário indisponível. Tente outro horário:"
	msgMenuFallback = "Digite *1* para agendar um horário."

	msgBookingConfirmed = "✅ *Agendamento confirmado com sucesso!*\n\nVocê receberá uma confirmação em breve.\n\nDigite *1* para fazer outro agendamento."
	msgBookingDeclined  = "❌ Agendamento cancelado.\n\nDigite *1* para começar novamente."
)

// GenericErrorReply is what the user sees when a store failure
// interrupts the conversation. Never a stack trace.
const GenericErrorReply = "Desculpe, ocorreu um erro. Digite *1* para tentar novamente."

func renderServiceList(services []*models.Service) string {
	var b strings.Builder
	b.WriteString("📋 *Serviços Disponíveis:*\n\n")
	for i, svc := range services {
		fmt.Fprintf(&b, "%d. %s - R$ %.2f (%d min)\n", i+1, svc.Name, svc.Price, svc.Duration)
	}
	b.WriteString("\nDigite o número do serviço desejado:")
	return b.String()
}

func renderBarberList(barbers []*models.Barber) string {
	var b strings.Builder
	b.WriteString("💈 *Escolha o barbeiro:*\n\n")
	for i, barber := range barbers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, barber.Name)
	}
	b.WriteString("\nDigite o número do barbeiro:")
	return b.String()
}

func renderConfirmation(service *models.Service, barber *models.Barber, data *models.BookingData) string {
	displayDate := data.Date
	if d, err := time.Parse("2006-01-02", data.Date); err == nil {
		displayDate = d.Format("02/01/2006")
	}

	return fmt.Sprintf(`✅ *Confirme seu agendamento:*

📋 Serviço: %s
💈 Barbeiro: %s
📅 Data: %s
🕐 Horário: %s
💰 Valor: R$ %.2f

Digite *SIM* para confirmar ou *NÃO* para cancelar:`,
		service.Name, barber.Name, displayDate, data.Time, service.Price)
}
