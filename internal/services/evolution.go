package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// EvolutionSender delivers messages through an Evolution API instance:
// POST {host}/message/sendText/{instance} with an apikey header and a
// JSON body of {number, text}. A 200 response counts as delivered.
type EvolutionSender struct {
	host     string
	instance string
	apiKey   string
	client   *http.Client
}

// NewEvolutionSender builds a sender from EVOLUTION_HOST,
// EVOLUTION_INSTANCE and EVOLUTION_API_KEY
func NewEvolutionSender() *EvolutionSender {
	host := os.Getenv("EVOLUTION_HOST")
	if host == "" {
		host = "http://evolution:8080"
	}
	instance := os.Getenv("EVOLUTION_INSTANCE")
	if instance == "" {
		instance = "barbearia"
	}

	return &EvolutionSender{
		host:     host,
		instance: instance,
		apiKey:   os.Getenv("EVOLUTION_API_KEY"),
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type evolutionTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// SendText sends a WhatsApp text message via Evolution
func (e *EvolutionSender) SendText(phone, text string) bool {
	body, err := json.Marshal(evolutionTextRequest{Number: phone, Text: text})
	if err != nil {
		log.Printf("❌ Failed to encode Evolution payload: %v", err)
		return false
	}

	url := fmt.Sprintf("%s/message/sendText/%s", e.host, e.instance)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ Failed to build Evolution request: %v", err)
		return false
	}
	req.Header.Set("apikey", e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		log.Printf("❌ Failed to send WhatsApp message to %s: %v", phone, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Evolution returned status %d for %s", resp.StatusCode, phone)
		return false
	}

	log.Printf("✅ WhatsApp message sent to %s", phone)
	return true
}
