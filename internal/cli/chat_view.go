package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okravets/freightdesk/internal/assistant"
	"github.com/okravets/freightdesk/internal/cli/formatter"
)

// chatView is the interactive multi-turn chat session. Each submitted line
// runs one assistant turn; replies stream into the scrollback.
type chatView struct {
	app      *App
	input    textinput.Model
	function assistant.FunctionType

	lines   []string
	waiting bool
}

// chatReplyMsg carries the result of an assistant turn back into Update.
type chatReplyMsg struct {
	result *assistant.SendResult
	err    error
}

func newChatView(app *App, fn assistant.FunctionType) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000

	v := &chatView{
		app:      app,
		input:    ti,
		function: fn,
	}

	if conv := app.Conversations.Current(); conv != nil {
		for _, msg := range conv.Messages {
			v.lines = append(v.lines, renderChatMessage(msg.Sender.Label(), msg.Content))
		}
	}
	v.lines = append(v.lines,
		formatter.Dim("Chat with the assistant. Enter sends, esc quits, /function NAME switches mode."))

	return v
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC {
			return v, tea.Quit
		}
		if msg.Type == tea.KeyEnter && !v.waiting {
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}

	case chatReplyMsg:
		v.waiting = false
		if msg.err != nil {
			v.lines = append(v.lines, formatter.StyleRed.Render("Error: ")+msg.err.Error())
			return v, nil
		}
		v.lines = append(v.lines, renderChatMessage("Assistant", msg.result.Reply))
		if msg.result.Action != nil {
			v.lines = append(v.lines, renderActionSummary(msg.result.Action))
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder

	for _, line := range v.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.waiting {
		b.WriteString(formatter.Dim("Thinking..."))
		b.WriteString("\n")
	}

	prompt := formatter.StylePurple.Render(string(v.function)) + formatter.Dim("> ")
	b.WriteString(prompt)
	b.WriteString(v.input.View())

	return b.String()
}

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	switch {
	case input == "/quit" || input == "/exit" || input == "/q":
		return v, tea.Quit
	case strings.HasPrefix(input, "/function "):
		name := strings.TrimSpace(strings.TrimPrefix(input, "/function "))
		v.function = assistant.ParseFunctionType(name)
		v.lines = append(v.lines, formatter.Dim("Function: "+v.function.Label()))
		return v, nil
	case input == "/functions":
		var names []string
		for _, f := range assistant.FunctionTypes {
			names = append(names, string(f))
		}
		v.lines = append(v.lines, formatter.Dim(strings.Join(names, ", ")))
		return v, nil
	}

	v.lines = append(v.lines, renderChatMessage("You", input))
	v.waiting = true

	fn := v.function
	return v, func() tea.Msg {
		res, err := v.app.Assistant.Send(context.Background(), assistant.SendRequest{
			Message:  input,
			Function: fn,
		})
		return chatReplyMsg{result: res, err: err}
	}
}

func renderChatMessage(label, content string) string {
	styled := formatter.StylePurple.Render(label + ":")
	if label == "You" {
		styled = formatter.StyleBlue.Render(label + ":")
	}
	return styled + " " + content
}

func renderActionSummary(action *assistant.Action) string {
	var summary string
	switch action.Kind {
	case assistant.ActionCreateTask:
		summary = fmt.Sprintf("task %q", action.Task.Title)
	case assistant.ActionCreateClient:
		summary = fmt.Sprintf("client %q", action.Client.Name)
	case assistant.ActionCreateCarrier:
		summary = fmt.Sprintf("carrier %q", action.Carrier.Name)
	case assistant.ActionCreateInvoice:
		summary = fmt.Sprintf("invoice for %q", action.Invoice.ClientName)
	}
	return formatter.StyleGreen.Render("→ Suggested: ") + summary
}
