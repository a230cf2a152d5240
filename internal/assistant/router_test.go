package assistant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/llm"
)

func TestBuildMessages_SystemThenUser(t *testing.T) {
	msgs := BuildMessages(PromptRequest{
		Message:  "hello",
		Function: FunctionGeneralChat,
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, SystemPrompt(FunctionGeneralChat), msgs[0].Content)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, "hello", msgs[1].Content)
}

func TestBuildMessages_HistoryRolesAndWindow(t *testing.T) {
	var history []domain.Message
	for i := 0; i < 15; i++ {
		sender := domain.SenderUser
		if i%2 == 1 {
			sender = domain.SenderAI
		}
		history = append(history, domain.Message{Sender: sender, Content: fmt.Sprintf("msg %d", i)})
	}

	msgs := BuildMessages(PromptRequest{
		Message:  "latest",
		Function: FunctionGeneralChat,
		History:  history,
	})

	// system + 10-message window + live message
	require.Len(t, msgs, 12)
	assert.Equal(t, "msg 5", msgs[1].Content, "window keeps the trailing messages")
	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
	assert.Equal(t, llm.RoleUser, msgs[2].Role)
	assert.Equal(t, "msg 14", msgs[10].Content)
	assert.Equal(t, "latest", msgs[11].Content)
}

func TestBuildMessages_CustomWindow(t *testing.T) {
	history := []domain.Message{
		{Sender: domain.SenderUser, Content: "one"},
		{Sender: domain.SenderAI, Content: "two"},
		{Sender: domain.SenderUser, Content: "three"},
	}

	msgs := BuildMessages(PromptRequest{
		Message:       "latest",
		Function:      FunctionGeneralChat,
		History:       history,
		HistoryWindow: 2,
	})

	require.Len(t, msgs, 4)
	assert.Equal(t, "two", msgs[1].Content)
	assert.Equal(t, "three", msgs[2].Content)
}

func TestBuildMessages_EmptyMessageOmitted(t *testing.T) {
	msgs := BuildMessages(PromptRequest{
		Message:  "   ",
		Function: FunctionGeneralChat,
		History:  []domain.Message{{Sender: domain.SenderUser, Content: "earlier"}},
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, "earlier", msgs[1].Content)
}

func TestBuildMessages_FileAddsSuffixAndCompositePrompt(t *testing.T) {
	msgs := BuildMessages(PromptRequest{
		Message:  "what is in this file?",
		Function: FunctionDataProcessing,
		File: &domain.UploadedFile{
			Name:    "manifest.csv",
			Type:    "text/csv",
			Content: "a,b,c\n1,2,3",
		},
	})

	require.Len(t, msgs, 2)
	assert.True(t, strings.HasSuffix(msgs[0].Content, fileAnalysisSuffix))

	user := msgs[1].Content
	assert.Contains(t, user, "The user uploaded a text/csv file")
	assert.Contains(t, user, "a,b,c\n1,2,3")
	assert.Contains(t, user, "The user asks: what is in this file?")
	assert.Contains(t, user, "Provide a thorough analysis")
}

func TestBuildMessages_FileWithoutMessageStillSent(t *testing.T) {
	msgs := BuildMessages(PromptRequest{
		Function: FunctionGeneralChat,
		File:     &domain.UploadedFile{Type: "text/plain", Content: "payload"},
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "payload")
}

func TestTruncateContent_WithinLimitUnchanged(t *testing.T) {
	content := strings.Repeat("x", 100)
	assert.Equal(t, content, TruncateContent(content, 10000))
	assert.Equal(t, content, TruncateContent(content, 100), "exact limit is not truncated")
}

func TestTruncateContent_OverLimit(t *testing.T) {
	for _, limit := range []int{10000, 100000} {
		content := strings.Repeat("y", limit+50000)
		got := TruncateContent(content, limit)

		notice := truncationNotice(limit)
		assert.Len(t, got, limit+len(notice))
		assert.Equal(t, content[:limit], got[:limit], "prefix preserved verbatim")
		assert.True(t, strings.HasSuffix(got, notice))
	}
}

func TestTruncateContent_NoticeNamesGroupedLimit(t *testing.T) {
	got := TruncateContent(strings.Repeat("z", 150000), 100000)
	assert.Contains(t, got, "This is the first 100,000 characters.")
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "1,000", groupDigits(1000))
	assert.Equal(t, "10,000", groupDigits(10000))
	assert.Equal(t, "1,234,567", groupDigits(1234567))
}
