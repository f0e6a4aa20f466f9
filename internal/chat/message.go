package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message roles. The trainee speaks as "user"; the simulated customer
// replies as "assistant". System messages narrate session events.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single entry in the session transcript.
type Message struct {
	ID               uuid.UUID `json:"id"`
	Role             string    `json:"role"`
	Content          string    `json:"content"`
	Timestamp        time.Time `json:"timestamp"`
	Emotion          string    `json:"emotion,omitempty"`
	EmotionIntensity float64   `json:"emotion_intensity,omitempty"`
}

// New stamps a message with a fresh id and the current UTC time.
func New(role, content string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}
