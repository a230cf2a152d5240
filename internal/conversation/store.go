// Package conversation owns chat history: an ordered list of conversations,
// each an ordered sequence of messages, plus the pointer naming the
// conversation that receives new messages. State persists under two fixed
// store keys, written together on every mutation.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okravets/freightdesk/internal/db"
	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/kv"
)

// Store keys for the conversation list and the current-conversation pointer.
const (
	ListKey    = "conversations"
	CurrentKey = "currentConversationId"
)

// Conversation is an ordered sequence of messages with list metadata.
type Conversation struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	LastMessage string           `json:"lastMessage"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Messages    []domain.Message `json:"messages"`
}

// Store manages conversations and the current pointer. Like the timer,
// mutations apply in memory first; mutators return only the persistence
// error, which callers surface as a non-fatal notice.
type Store struct {
	mu    sync.Mutex
	store kv.Store
	uow   db.UnitOfWork // when set, both keys are written in one transaction
	clock func() time.Time
	newID func() string

	conversations []*Conversation
	currentID     string
}

// Option configures a Store.
type Option func(*Store)

// WithUnitOfWork makes persistence write the list and pointer keys inside a
// single transaction. Only valid when the store is SQLite-backed.
func WithUnitOfWork(uow db.UnitOfWork) Option {
	return func(s *Store) { s.uow = uow }
}

// WithClock overrides the wall-clock source.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator overrides conversation/message id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates an empty Store persisting to store.
func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{
		store: store,
		clock: time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load eagerly reads the persisted conversation list and pointer.
// Unreadable list state resets to empty rather than failing.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.store.Get(ctx, ListKey)
	if err != nil {
		return fmt.Errorf("loading conversations: %w", err)
	}
	if found {
		var list []*Conversation
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			s.conversations = list
		}
	}

	current, found, err := s.store.Get(ctx, CurrentKey)
	if err != nil {
		return fmt.Errorf("loading conversation pointer: %w", err)
	}
	if found && s.findLocked(current) != nil {
		s.currentID = current
	}
	return nil
}

// Append adds a message to the conversation with the given id. An empty id
// targets the current conversation; when there is no current conversation a
// new one is created with a sequential default title and becomes current.
// Returns the id of the conversation that received the message.
func (s *Store) Append(ctx context.Context, conversationID string, msg domain.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conversationID == "" {
		conversationID = s.currentID
	}

	conv := s.findLocked(conversationID)
	if conv == nil {
		conv = &Conversation{
			ID:    s.newID(),
			Title: fmt.Sprintf("Conversation %d", len(s.conversations)+1),
		}
		s.conversations = append(s.conversations, conv)
		s.currentID = conv.ID
	}

	if msg.ID == "" {
		msg.ID = s.newID()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.clock()
	}

	conv.Messages = append(conv.Messages, msg)
	conv.LastMessage = msg.Content
	conv.UpdatedAt = msg.Timestamp

	return conv.ID, s.persist(ctx)
}

// Select points new messages at the conversation with the given id.
// Selecting an unknown id is a silent no-op.
func (s *Store) Select(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil {
		return nil
	}
	s.currentID = id
	return s.persist(ctx)
}

// Delete removes the conversation with the given id. Deleting the current
// conversation clears the pointer, so the next Append starts a fresh one.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.conversations[:0]
	removed := false
	for _, conv := range s.conversations {
		if conv.ID == id {
			removed = true
			continue
		}
		kept = append(kept, conv)
	}
	if !removed {
		return nil
	}
	s.conversations = kept
	if s.currentID == id {
		s.currentID = ""
	}
	return s.persist(ctx)
}

// ClearCurrent drops the pointer so the next Append starts a new
// conversation. Existing conversations are untouched.
func (s *Store) ClearCurrent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentID == "" {
		return nil
	}
	s.currentID = ""
	return s.persist(ctx)
}

// Get returns a copy of the conversation with the given id.
func (s *Store) Get(id string) (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return nil, false
	}
	copied := *conv
	copied.Messages = append([]domain.Message(nil), conv.Messages...)
	return &copied, true
}

// Current returns a copy of the current conversation, or nil when the
// pointer is empty.
func (s *Store) Current() *Conversation {
	s.mu.Lock()
	currentID := s.currentID
	s.mu.Unlock()
	if currentID == "" {
		return nil
	}
	conv, _ := s.Get(currentID)
	return conv
}

// CurrentID returns the current-conversation pointer, or "" when unset.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// List returns copies of all conversations in creation order.
func (s *Store) List() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		copied := *conv
		copied.Messages = append([]domain.Message(nil), conv.Messages...)
		out = append(out, &copied)
	}
	return out
}

func (s *Store) findLocked(id string) *Conversation {
	if id == "" {
		return nil
	}
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// persist writes both keys, transactionally when a unit of work is
// configured. Callers hold the lock.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.conversations)
	if err != nil {
		return fmt.Errorf("encoding conversations: %w", err)
	}
	list := string(data)

	if s.uow != nil {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txStore := kv.NewSQLiteStore(tx)
			if err := txStore.Set(ctx, ListKey, list); err != nil {
				return err
			}
			return txStore.Set(ctx, CurrentKey, s.currentID)
		})
	}

	if err := s.store.Set(ctx, ListKey, list); err != nil {
		return fmt.Errorf("persisting conversations: %w", err)
	}
	if err := s.store.Set(ctx, CurrentKey, s.currentID); err != nil {
		return fmt.Errorf("persisting conversation pointer: %w", err)
	}
	return nil
}
