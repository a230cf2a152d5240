package assistant

import (
	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/llm"
)

// ActionKind names a structured operation the assistant can request.
type ActionKind string

const (
	ActionCreateTask    ActionKind = "createTask"
	ActionCreateClient  ActionKind = "createClient"
	ActionCreateCarrier ActionKind = "createCarrier"
	ActionCreateInvoice ActionKind = "createInvoice"
)

// Action is a decoded assistant instruction. Exactly one payload field is
// non-nil, matching Kind.
type Action struct {
	Kind    ActionKind
	Task    *domain.TaskDraft
	Client  *domain.ClientDraft
	Carrier *domain.CarrierDraft
	Invoice *domain.InvoiceDraft
}

type actionEnvelope struct {
	Action  string               `json:"action"`
	Task    *domain.TaskDraft    `json:"task,omitempty"`
	Client  *domain.ClientDraft  `json:"client,omitempty"`
	Carrier *domain.CarrierDraft `json:"carrier,omitempty"`
	Invoice *domain.InvoiceDraft `json:"invoice,omitempty"`
}

// InterpretAction scans an assistant reply for a fenced JSON action block
// and decodes it. The second return reports whether a valid action was
// found; malformed or incomplete payloads yield (nil, false) rather than an
// error so a bad block degrades to plain chat text.
func InterpretAction(text string) (*Action, bool) {
	if !llm.HasFencedJSON(text) {
		return nil, false
	}

	env, err := llm.ExtractJSON[actionEnvelope](text, nil)
	if err != nil {
		return nil, false
	}

	switch ActionKind(env.Action) {
	case ActionCreateTask:
		if env.Task == nil || env.Task.Validate() != nil {
			return nil, false
		}
		return &Action{Kind: ActionCreateTask, Task: env.Task}, true
	case ActionCreateClient:
		if env.Client == nil || env.Client.Validate() != nil {
			return nil, false
		}
		return &Action{Kind: ActionCreateClient, Client: env.Client}, true
	case ActionCreateCarrier:
		if env.Carrier == nil || env.Carrier.Validate() != nil {
			return nil, false
		}
		return &Action{Kind: ActionCreateCarrier, Carrier: env.Carrier}, true
	case ActionCreateInvoice:
		if env.Invoice == nil || env.Invoice.Validate() != nil {
			return nil, false
		}
		return &Action{Kind: ActionCreateInvoice, Invoice: env.Invoice}, true
	default:
		return nil, false
	}
}
