package conversation

import (
	"fmt"
	"strings"
)

// exportTimeLayout is the human-readable timestamp used in transcripts.
const exportTimeLayout = "2006-01-02 15:04:05"

// Export renders the conversation with the given id as a plain-text
// transcript: one block per message, sender label and local timestamp
// followed by the content. The output is deterministic for a given
// conversation.
func (s *Store) Export(id string) (string, error) {
	conv, ok := s.Get(id)
	if !ok {
		return "", fmt.Errorf("conversation %q not found", id)
	}
	return Transcript(conv), nil
}

// Transcript formats a conversation as a downloadable plain-text transcript.
func Transcript(conv *Conversation) string {
	var b strings.Builder
	for _, msg := range conv.Messages {
		ts := msg.Timestamp.Local().Format(exportTimeLayout)
		fmt.Fprintf(&b, "%s (%s):\n%s\n\n", msg.Sender.Label(), ts, msg.Content)
	}
	return b.String()
}

// ExportFileName derives a file name for an exported transcript from the
// conversation title.
func ExportFileName(conv *Conversation) string {
	name := strings.TrimSpace(conv.Title)
	if name == "" {
		name = conv.ID
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	return name + ".txt"
}
