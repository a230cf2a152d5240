// Package assistant implements the chat assistant core: the function-type
// router mapping assistant modes to system prompts, prompt construction with
// file attachment and truncation, the action interpreter that lifts typed
// entity suggestions out of replies, and the orchestration between the
// conversation store and the chat completion client.
package assistant

// FunctionType selects an assistant mode. Each value maps 1:1 to a system
// prompt template.
type FunctionType string

const (
	FunctionGeneralChat        FunctionType = "general_chat"
	FunctionTaskManagement     FunctionType = "task_management"
	FunctionClientManagement   FunctionType = "client_management"
	FunctionCarrierManagement  FunctionType = "carrier_management"
	FunctionInvoiceCreation    FunctionType = "invoice_creation"
	FunctionEmailAnalysis      FunctionType = "email_analysis"
	FunctionDataProcessing     FunctionType = "data_processing"
	FunctionWebResearch        FunctionType = "web_research"
	FunctionDocumentGeneration FunctionType = "document_generation"
	FunctionNewsAggregation    FunctionType = "news_aggregation"
	FunctionPersonalInfo       FunctionType = "personal_info"
	FunctionDecisionSupport    FunctionType = "decision_support"
)

// FunctionTypes lists all assistant modes in display order.
var FunctionTypes = []FunctionType{
	FunctionGeneralChat,
	FunctionTaskManagement,
	FunctionClientManagement,
	FunctionCarrierManagement,
	FunctionInvoiceCreation,
	FunctionEmailAnalysis,
	FunctionDataProcessing,
	FunctionWebResearch,
	FunctionDocumentGeneration,
	FunctionNewsAggregation,
	FunctionPersonalInfo,
	FunctionDecisionSupport,
}

var functionLabels = map[FunctionType]string{
	FunctionGeneralChat:        "General chat",
	FunctionTaskManagement:     "Task management",
	FunctionClientManagement:   "Client management",
	FunctionCarrierManagement:  "Carrier management",
	FunctionInvoiceCreation:    "Invoice creation",
	FunctionEmailAnalysis:      "Email analysis",
	FunctionDataProcessing:     "Data processing",
	FunctionWebResearch:        "Web research",
	FunctionDocumentGeneration: "Document generation",
	FunctionNewsAggregation:    "News aggregation",
	FunctionPersonalInfo:       "Personal info",
	FunctionDecisionSupport:    "Decision support",
}

// Label returns the human-readable name for the function type.
func (f FunctionType) Label() string {
	if label, ok := functionLabels[f]; ok {
		return label
	}
	return string(f)
}

// Valid reports whether f is a known function type.
func (f FunctionType) Valid() bool {
	_, ok := functionLabels[f]
	return ok
}

// ParseFunctionType maps a string to a FunctionType. Unknown or empty values
// fall back to general chat, mirroring the prompt router's default.
func ParseFunctionType(s string) FunctionType {
	f := FunctionType(s)
	if f.Valid() {
		return f
	}
	return FunctionGeneralChat
}
