package assistant

import (
	"fmt"
	"strings"

	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/llm"
)

// Defaults for prompt construction. Both are configurable per request; the
// truncation limit in particular is a single knob rather than a per-call-site
// constant.
const (
	DefaultHistoryWindow   = 10
	DefaultMaxContentChars = 10000
)

// PromptRequest carries everything needed to build the outbound message
// list for one assistant turn.
type PromptRequest struct {
	Message  string
	Function FunctionType
	File     *domain.UploadedFile
	History  []domain.Message

	// HistoryWindow caps how many trailing history messages are included.
	// Zero means DefaultHistoryWindow.
	HistoryWindow int

	// MaxContentChars caps attached file content before truncation.
	// Zero means DefaultMaxContentChars.
	MaxContentChars int
}

// BuildMessages constructs the ordered message list for the chat completion
// call: system prompt, trailing history window, then the live user message.
// When the live input is empty and no file is attached, the trailing user
// message is omitted (pure history replay).
func BuildMessages(req PromptRequest) []llm.ChatMessage {
	window := req.HistoryWindow
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	limit := req.MaxContentChars
	if limit <= 0 {
		limit = DefaultMaxContentChars
	}

	systemPrompt := SystemPrompt(req.Function)
	userPrompt := req.Message

	if req.File != nil && req.File.Content != "" {
		systemPrompt += fileAnalysisSuffix
		processed := TruncateContent(req.File.Content, limit)
		userPrompt = fmt.Sprintf(
			"The user uploaded a %s file with the following content:\n\n%s\n\nThe user asks: %s\n\nProvide a thorough analysis based on the file content.",
			req.File.Type, processed, req.Message,
		)
	}

	messages := []llm.ChatMessage{{Role: llm.RoleSystem, Content: systemPrompt}}

	history := req.History
	if len(history) > window {
		history = history[len(history)-window:]
	}
	for _, msg := range history {
		role := llm.RoleAssistant
		if msg.Sender == domain.SenderUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.ChatMessage{Role: role, Content: msg.Content})
	}

	if strings.TrimSpace(userPrompt) != "" {
		messages = append(messages, llm.ChatMessage{Role: llm.RoleUser, Content: userPrompt})
	}

	return messages
}

// TruncateContent keeps the first limit characters of content and appends a
// visible notice naming how many characters were kept. Content within the
// limit is returned unchanged.
func TruncateContent(content string, limit int) string {
	if limit <= 0 || len(content) <= limit {
		return content
	}
	return content[:limit] + truncationNotice(limit)
}

func truncationNotice(kept int) string {
	return fmt.Sprintf("\n\n[File content truncated due to size limitations. This is the first %s characters.]", groupDigits(kept))
}

// groupDigits formats a non-negative integer with thousands separators.
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
