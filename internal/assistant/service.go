package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okravets/freightdesk/internal/conversation"
	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/llm"
)

// ErrEmptyMessage is returned when a send request carries neither text nor
// an attached file.
var ErrEmptyMessage = errors.New("message is empty")

// Service orchestrates one assistant turn: it records the user message,
// builds the prompt, calls the model and records the reply.
type Service struct {
	client          llm.ChatClient
	conversations   *conversation.Store
	historyWindow   int
	maxContentChars int
	logw            io.Writer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithHistoryWindow overrides how many trailing messages are replayed to
// the model.
func WithHistoryWindow(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.historyWindow = n
		}
	}
}

// WithMaxContentChars overrides the attached-file truncation limit.
func WithMaxContentChars(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxContentChars = n
		}
	}
}

// WithLogWriter directs non-fatal notices (persistence failures, discarded
// action blocks) to w instead of discarding them.
func WithLogWriter(w io.Writer) ServiceOption {
	return func(s *Service) { s.logw = w }
}

func NewService(client llm.ChatClient, conversations *conversation.Store, opts ...ServiceOption) *Service {
	s := &Service{
		client:          client,
		conversations:   conversations,
		historyWindow:   DefaultHistoryWindow,
		maxContentChars: DefaultMaxContentChars,
		logw:            io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendRequest is one user turn.
type SendRequest struct {
	ConversationID string
	Message        string
	Function       FunctionType
	File           *domain.UploadedFile
}

// SendResult is the assistant's reply plus any structured action it
// requested.
type SendResult struct {
	ConversationID string
	Reply          string
	Action         *Action
}

// Send runs one assistant turn. The user message is recorded before the
// model call; when the call fails the user message stays recorded but no
// assistant reply is appended. Persistence failures on either append are
// reported as notices, not errors, so a full disk never loses the reply.
func (s *Service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.Message) == "" && req.File == nil {
		return nil, ErrEmptyMessage
	}

	// Snapshot history before the user message is appended: the prompt
	// replays prior turns, then carries the live message separately.
	var history []domain.Message
	if conv, ok := s.conversations.Get(req.ConversationID); ok {
		history = conv.Messages
	} else if req.ConversationID == "" {
		if conv := s.conversations.Current(); conv != nil {
			history = conv.Messages
		}
	}

	convID, err := s.conversations.Append(ctx, req.ConversationID, domain.Message{
		Sender:  domain.SenderUser,
		Content: req.Message,
	})
	if err != nil {
		s.notice("recording user message: %v", err)
	}

	messages := BuildMessages(PromptRequest{
		Message:         req.Message,
		Function:        req.Function,
		File:            req.File,
		History:         history,
		HistoryWindow:   s.historyWindow,
		MaxContentChars: s.maxContentChars,
	})

	task := llm.TaskAssistant
	if req.File != nil {
		task = llm.TaskFileAnalysis
	}
	resp, err := s.client.Chat(ctx, llm.ChatRequest{Task: task, Messages: messages})
	if err != nil {
		return nil, err
	}

	action, ok := InterpretAction(resp.Text)
	if !ok && llm.HasFencedJSON(resp.Text) {
		s.notice("discarding malformed action block in reply")
	}

	if _, err := s.conversations.Append(ctx, convID, domain.Message{
		Sender:       domain.SenderAI,
		Content:      resp.Text,
		FunctionType: string(req.Function),
	}); err != nil {
		s.notice("recording assistant reply: %v", err)
	}

	return &SendResult{ConversationID: convID, Reply: resp.Text, Action: action}, nil
}

func (s *Service) notice(format string, args ...any) {
	fmt.Fprintf(s.logw, format+"\n", args...)
}
