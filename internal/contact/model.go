package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength    = 100
	MaxMessageLength = 2000
)

var ErrInvalidMessage = errors.New("invalid contact message")

type Message struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Body       string    `json:"message" bson:"message"`
	ReceivedAt time.Time `json:"received_at" bson:"received_at"`
}

// Normalize trims surrounding whitespace and validates the submitted fields.
func (m *Message) Normalize() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)

	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMessage)
	}
	if utf8.RuneCountInString(m.Name) > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidMessage, MaxNameLength)
	}
	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return fmt.Errorf("%w: email is not valid", ErrInvalidMessage)
	}
	if m.Body == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidMessage)
	}
	if utf8.RuneCountInString(m.Body) > MaxMessageLength {
		return fmt.Errorf("%w: message must be at most %d characters", ErrInvalidMessage, MaxMessageLength)
	}
	return nil
}
