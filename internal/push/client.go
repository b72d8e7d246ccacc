package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

type Message struct {
	To    string         `json:"to"`
	Sound string         `json:"sound"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client envia para um relay compatível com a API de push do Expo.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("push: empty recipient token")
	}
	if msg.Sound == "" {
		msg.Sound = "default"
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "push: encode message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "push: build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "push: send")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Newf("push: relay answered %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	return nil
}

// Notification monta as mensagens usadas pelo sistema.
func Notification(token, title, body string, data map[string]any) Message {
	return Message{To: token, Sound: "default", Title: title, Body: body, Data: data}
}

func BookingCreatedBody(barber, service, date, slot, customer string) string {
	if customer == "" {
		customer = "a customer"
	}
	return fmt.Sprintf("%s has a new appointment for %s on %s at %s with %s", barber, service, date, slot, customer)
}

func StatusChangedBody(barber, service, statusLabel string) string {
	return fmt.Sprintf("Your appointment with %s for %s has been %s", barber, service, statusLabel)
}

func ReminderBody(barber, service, slot string) string {
	return fmt.Sprintf("Your appointment with %s for %s starts at %s, in one hour", barber, service, slot)
}

const (
	TitleBookingCreated = "New Appointment Booking"
	TitleStatusChanged  = "Appointment Update"
	TitleReminder       = "Appointment Reminder"
)
