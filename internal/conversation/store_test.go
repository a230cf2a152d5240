package conversation_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/okravets/freightdesk/internal/conversation"
	"github.com/okravets/freightdesk/internal/db"
	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIDs returns a deterministic id generator: c1, c2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}
}

func newTestStore(t *testing.T) (*conversation.Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	s := conversation.NewStore(mem, conversation.WithIDGenerator(seqIDs()))
	require.NoError(t, s.Load(context.Background()))
	return s, mem
}

func userMsg(content string) domain.Message {
	return domain.Message{Sender: domain.SenderUser, Content: content}
}

func aiMsg(content string) domain.Message {
	return domain.Message{Sender: domain.SenderAI, Content: content}
}

func TestStore_AppendCreatesConversation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, "", userMsg("Hi"))
	require.NoError(t, err)
	assert.Equal(t, id, s.CurrentID())

	conv, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Conversation 1", conv.Title)
	assert.Equal(t, "Hi", conv.LastMessage)
	require.Len(t, conv.Messages, 1)
	assert.NotEmpty(t, conv.Messages[0].ID)
	assert.False(t, conv.Messages[0].Timestamp.IsZero())
}

func TestStore_AppendToCurrentConversation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, "", userMsg("Hi"))
	require.NoError(t, err)
	id2, err := s.Append(ctx, "", aiMsg("Hello"))
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	conv, _ := s.Get(id)
	assert.Len(t, conv.Messages, 2)
	assert.Equal(t, "Hello", conv.LastMessage)
}

func TestStore_SelectUnknownIsSilentNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, "", userMsg("Hi"))
	require.NoError(t, err)

	require.NoError(t, s.Select(ctx, "missing"))
	assert.Equal(t, id, s.CurrentID(), "pointer unchanged for unknown id")
}

func TestStore_DeleteCurrentClearsPointer(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, "", userMsg("Hi"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	assert.Empty(t, s.CurrentID())
	_, ok := s.Get(id)
	assert.False(t, ok)

	// The next append starts a brand-new conversation, not the deleted id.
	newID, err := s.Append(ctx, "", userMsg("Again"))
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)
}

func TestStore_DeleteOtherKeepsPointer(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Append(ctx, "", userMsg("one"))
	require.NoError(t, err)
	require.NoError(t, s.ClearCurrent(ctx))
	second, err := s.Append(ctx, "", userMsg("two"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, first))
	assert.Equal(t, second, s.CurrentID())
	assert.Len(t, s.List(), 1)
}

func TestStore_PersistAndReload(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()

	s := conversation.NewStore(mem, conversation.WithIDGenerator(seqIDs()))
	require.NoError(t, s.Load(ctx))
	id, err := s.Append(ctx, "", userMsg("Hi"))
	require.NoError(t, err)
	_, err = s.Append(ctx, "", aiMsg("Hello"))
	require.NoError(t, err)

	// A fresh store over the same kv sees the same state.
	reloaded := conversation.NewStore(mem)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, id, reloaded.CurrentID())

	conv, ok := reloaded.Get(id)
	require.True(t, ok)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, domain.SenderAI, conv.Messages[1].Sender)
	assert.False(t, conv.Messages[1].Timestamp.IsZero(), "timestamps reconstituted")
}

func TestStore_LoadIgnoresDanglingPointer(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, conversation.CurrentKey, "ghost"))

	s := conversation.NewStore(mem)
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.CurrentID())
}

func TestStore_TransactionalPersistence(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := kv.NewSQLiteStore(database)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	s := conversation.NewStore(store, conversation.WithUnitOfWork(uow))
	require.NoError(t, s.Load(ctx))

	id, err := s.Append(ctx, "", userMsg("Hi"))
	require.NoError(t, err)

	// Both keys visible outside the transaction.
	listRaw, found, err := store.Get(ctx, conversation.ListKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, listRaw, `"Hi"`)

	current, found, err := store.Get(ctx, conversation.CurrentKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, current)
}

func TestExport_TranscriptFormatAndIdempotence(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	t1 := time.Date(2026, 5, 2, 10, 30, 0, 0, time.Local)
	t2 := t1.Add(time.Minute)
	id, err := s.Append(ctx, "", domain.Message{Sender: domain.SenderUser, Content: "Hi", Timestamp: t1})
	require.NoError(t, err)
	_, err = s.Append(ctx, id, domain.Message{Sender: domain.SenderAI, Content: "Hello", Timestamp: t2})
	require.NoError(t, err)

	want := "You (2026-05-02 10:30:00):\nHi\n\n" +
		"Assistant (2026-05-02 10:31:00):\nHello\n\n"

	first, err := s.Export(id)
	require.NoError(t, err)
	assert.Equal(t, want, first)

	second, err := s.Export(id)
	require.NoError(t, err)
	assert.Equal(t, first, second, "export is idempotent")
}

func TestExport_UnknownConversation(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Export("missing")
	assert.Error(t, err)
}

func TestExportFileName_SanitizesTitle(t *testing.T) {
	conv := &conversation.Conversation{ID: "c1", Title: "Rates: EU/UA?"}
	assert.Equal(t, "Rates- EU-UA-.txt", conversation.ExportFileName(conv))

	blank := &conversation.Conversation{ID: "c2", Title: "  "}
	assert.Equal(t, "c2.txt", conversation.ExportFileName(blank))
}
