package services

import (
	"log"
	"os"
)

// MessageSender delivers outgoing chat messages. Implementations are
// fire-and-forget: they log transport failures and report false, but
// never return an error to the caller. The webhook handler does not
// act on the result today.
type MessageSender interface {
	SendText(phone, text string) bool
}

// NewSenderFromEnv picks the delivery transport from WHATSAPP_PROVIDER.
// Defaults to the Evolution API; "twilio" selects the Twilio sender.
func NewSenderFromEnv() MessageSender {
	if os.Getenv("WHATSAPP_PROVIDER") == "twilio" {
		sender, err := NewTwilioSender()
		if err != nil {
			log.Printf("⚠️  Twilio sender not available (%v), falling back to Evolution", err)
		} else {
			log.Println("✅ Using Twilio message delivery")
			return sender
		}
	}
	log.Println("✅ Using Evolution API message delivery")
	return NewEvolutionSender()
}
