package domain

import "time"

// Sender identifies which side of a conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Label returns the transcript label for the sender.
func (s Sender) Label() string {
	if s == SenderUser {
		return "You"
	}
	return "Assistant"
}

// Message is a single turn in a conversation.
type Message struct {
	ID           string    `json:"id"`
	Sender       Sender    `json:"sender"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	FunctionType string    `json:"functionType,omitempty"`
}

// UploadedFile is file content attached to the active chat session. It is
// owned by the session: cleared on new-chat or explicitly by the user.
type UploadedFile struct {
	Name    string `json:"name"`
	Type    string `json:"type"` // MIME type
	Content string `json:"content"`
}
