package cli

import (
	"github.com/spf13/cobra"

	"github.com/okravets/freightdesk/internal/assistant"
	"github.com/okravets/freightdesk/internal/config"
	"github.com/okravets/freightdesk/internal/conversation"
	"github.com/okravets/freightdesk/internal/tasks"
	"github.com/okravets/freightdesk/internal/timer"
)

// App holds references to all components used by CLI commands.
type App struct {
	Tasks         *tasks.Store
	Timer         *timer.Tracker
	Conversations *conversation.Store
	Assistant     *assistant.Service
	Analyzer      *assistant.Analyzer
	Files         *assistant.FileContext
	Config        *config.Config

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// interactive chat are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "freightdesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "freightdesk",
		Short: "Logistics operations desk: tasks, time tracking and an AI assistant",
	}

	root.AddCommand(
		newTaskCmd(app),
		newTimerCmd(app),
		newChatCmd(app),
		newAnalyzeCmd(app),
		newFileCmd(app),
	)

	return root
}
