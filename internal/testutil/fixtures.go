package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okravets/freightdesk/internal/domain"
)

var testMessageCounter atomic.Int64

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithAssignee(name string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = name
	}
}

func WithDeadline(d string) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = d
	}
}

func WithTimeEstimate(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.TimeEstimate = hours
	}
}

func NewTestTask(name string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:     uuid.New().String(),
		Name:   name,
		Status: domain.TaskNotStarted,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Message options
type MessageOption func(*domain.Message)

func WithFunctionType(f string) MessageOption {
	return func(m *domain.Message) {
		m.FunctionType = f
	}
}

func WithTimestamp(ts time.Time) MessageOption {
	return func(m *domain.Message) {
		m.Timestamp = ts
	}
}

func NewTestMessage(sender domain.Sender, content string, opts ...MessageOption) domain.Message {
	n := testMessageCounter.Add(1)
	m := domain.Message{
		ID:        fmt.Sprintf("msg-%d", n),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}
