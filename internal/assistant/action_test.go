package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretAction_CreateTask(t *testing.T) {
	reply := "Sure, I created that task for you:\n\n```json\n" +
		`{"action": "createTask", "task": {"title": "Call carrier", "description": "Confirm pickup window", "priority": "high", "status": "todo"}}` +
		"\n```\n\nLet me know if anything needs changing."

	action, ok := InterpretAction(reply)
	require.True(t, ok)
	assert.Equal(t, ActionCreateTask, action.Kind)
	require.NotNil(t, action.Task)
	assert.Equal(t, "Call carrier", action.Task.Title)
	assert.Equal(t, "high", action.Task.Priority)
	assert.Nil(t, action.Client)
}

func TestInterpretAction_CreateClient(t *testing.T) {
	reply := "```json\n" +
		`{"action": "createClient", "client": {"name": "Nova Trans LLC", "country": "Ukraine"}}` +
		"\n```"

	action, ok := InterpretAction(reply)
	require.True(t, ok)
	assert.Equal(t, ActionCreateClient, action.Kind)
	assert.Equal(t, "Nova Trans LLC", action.Client.Name)
}

func TestInterpretAction_CreateCarrier(t *testing.T) {
	reply := "```json\n" +
		`{"action": "createCarrier", "carrier": {"name": "Baltic Road", "serviceType": "Road"}}` +
		"\n```"

	action, ok := InterpretAction(reply)
	require.True(t, ok)
	assert.Equal(t, ActionCreateCarrier, action.Kind)
	assert.Equal(t, "Baltic Road", action.Carrier.Name)
}

func TestInterpretAction_CreateInvoice(t *testing.T) {
	reply := "```json\n" +
		`{"action": "createInvoice", "invoice": {"clientName": "Nova Trans LLC", "items": [{"description": "Freight Kyiv-Warsaw", "quantity": 1, "price": 1200}], "totalAmount": 1200}}` +
		"\n```"

	action, ok := InterpretAction(reply)
	require.True(t, ok)
	assert.Equal(t, ActionCreateInvoice, action.Kind)
	require.Len(t, action.Invoice.Items, 1)
	assert.Equal(t, 1200.0, action.Invoice.TotalAmount)
}

func TestInterpretAction_PlainTextIgnored(t *testing.T) {
	action, ok := InterpretAction("No structured output here, just advice about duty rates.")
	assert.False(t, ok)
	assert.Nil(t, action)
}

func TestInterpretAction_UnfencedJSONIgnored(t *testing.T) {
	// A bare JSON object without a ```json fence is not treated as an action.
	action, ok := InterpretAction(`{"action": "createTask", "task": {"title": "x"}}`)
	assert.False(t, ok)
	assert.Nil(t, action)
}

func TestInterpretAction_UnknownActionIgnored(t *testing.T) {
	reply := "```json\n" + `{"action": "deleteEverything"}` + "\n```"
	_, ok := InterpretAction(reply)
	assert.False(t, ok)
}

func TestInterpretAction_MissingPayloadIgnored(t *testing.T) {
	reply := "```json\n" + `{"action": "createTask"}` + "\n```"
	_, ok := InterpretAction(reply)
	assert.False(t, ok)
}

func TestInterpretAction_InvalidPayloadIgnored(t *testing.T) {
	reply := "```json\n" +
		`{"action": "createTask", "task": {"title": "", "priority": "high"}}` +
		"\n```"
	_, ok := InterpretAction(reply)
	assert.False(t, ok)

	reply = "```json\n" +
		`{"action": "createInvoice", "invoice": {"clientName": "Acme", "items": []}}` +
		"\n```"
	_, ok = InterpretAction(reply)
	assert.False(t, ok)
}

func TestInterpretAction_MalformedJSONIgnored(t *testing.T) {
	reply := "```json\n" + `{"action": "createTask", "task": {` + "\n```"
	_, ok := InterpretAction(reply)
	assert.False(t, ok)
}
