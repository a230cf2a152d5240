package domain

import "fmt"

// Drafts are entity suggestions extracted from assistant replies. The
// interpreter validates and surfaces them; actually creating the business
// entity is left to the command that received the suggestion.

// TaskDraft is a suggested task from a task_management reply.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority"` // low, medium, high
	Status      string `json:"status"`   // todo, in_progress, done
}

func (d *TaskDraft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("task draft: title is required")
	}
	switch d.Priority {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("task draft: invalid priority %q", d.Priority)
	}
	switch d.Status {
	case "", "todo", "in_progress", "done":
	default:
		return fmt.Errorf("task draft: invalid status %q", d.Status)
	}
	return nil
}

// ClientDraft is a suggested client record from a client_management reply.
type ClientDraft struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (d *ClientDraft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("client draft: name is required")
	}
	return nil
}

// CarrierDraft is a suggested carrier record from a carrier_management reply.
type CarrierDraft struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"` // Road, Air, Sea, Rail
	Notes         string `json:"notes,omitempty"`
}

func (d *CarrierDraft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("carrier draft: name is required")
	}
	return nil
}

// InvoiceItem is a single line on an invoice draft.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceDraft is a suggested invoice from an invoice_creation reply.
type InvoiceDraft struct {
	ClientName  string        `json:"clientName"`
	Items       []InvoiceItem `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	Date        string        `json:"date,omitempty"`
	DueDate     string        `json:"dueDate,omitempty"`
}

func (d *InvoiceDraft) Validate() error {
	if d.ClientName == "" {
		return fmt.Errorf("invoice draft: client name is required")
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("invoice draft: at least one item is required")
	}
	return nil
}
