package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"reimburse/internal/core"
)

// FormMessage carries one rendered reimbursement form to whoever mails or
// files it.
type FormMessage struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	ProcessedBy string    `json:"processed_by"`
	Body        string    `json:"body"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewFormMessage wraps a rendered form with a fresh id.
func NewFormMessage(f core.RenderedForm) *FormMessage {
	return &FormMessage{
		ID:          uuid.NewString(),
		Username:    f.Username,
		ProcessedBy: f.ProcessedBy,
		Body:        f.Body,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *FormMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FormMessageFromJSON creates a message from JSON bytes
func FormMessageFromJSON(data []byte) (*FormMessage, error) {
	var msg FormMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
