package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/okravets/freightdesk/internal/assistant"
	"github.com/okravets/freightdesk/internal/cli/formatter"
	"github.com/okravets/freightdesk/internal/conversation"
	"github.com/okravets/freightdesk/internal/domain"
)

func newChatCmd(app *App) *cobra.Command {
	var (
		function string
		filePath string
		convID   string
	)

	cmd := &cobra.Command{
		Use:   "chat [MESSAGE]",
		Short: "Talk to the assistant",
		Long: "Sends a message to the assistant in the current conversation. " +
			"With no message on an interactive terminal, opens a chat session.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fn := assistant.ParseFunctionType(function)
			if function == "" {
				fn = assistant.ParseFunctionType(app.Config.Assistant.DefaultFunction)
			}

			message := strings.Join(args, " ")
			if message == "" && filePath == "" {
				if !app.interactive() {
					return fmt.Errorf("message is required")
				}
				return runChatSession(app, convID, fn)
			}

			var file *domain.UploadedFile
			if filePath != "" {
				f, err := readUploadedFile(filePath)
				if err != nil {
					return err
				}
				file = f
				if err := app.Files.Save(context.Background(), *f); err != nil {
					warnPersistence(cmd, err)
				}
			}

			stopSpinner := func() {}
			if app.interactive() {
				stopSpinner = formatter.StartSpinner("Thinking...")
			}
			res, err := app.Assistant.Send(context.Background(), assistant.SendRequest{
				ConversationID: convID,
				Message:        message,
				Function:       fn,
				File:           file,
			})
			stopSpinner()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Reply)
			printAction(out, res.Action)
			return maybeApplyTaskAction(cmd, app, res.Action)
		},
	}

	cmd.Flags().StringVar(&function, "function", "", "Assistant function (e.g. task_management, invoice_creation)")
	cmd.Flags().StringVar(&filePath, "file", "", "Attach a file to the message")
	cmd.Flags().StringVar(&convID, "conversation", "", "Target conversation id (defaults to current)")

	cmd.AddCommand(
		newChatListCmd(app),
		newChatNewCmd(app),
		newChatSelectCmd(app),
		newChatExportCmd(app),
		newChatDeleteCmd(app),
		newChatHistoryCmd(app),
	)

	return cmd
}

func runChatSession(app *App, convID string, fn assistant.FunctionType) error {
	if convID != "" {
		if err := app.Conversations.Select(context.Background(), convID); err != nil {
			return err
		}
	}
	model := newChatView(app, fn)
	_, err := tea.NewProgram(model).Run()
	return err
}

func readUploadedFile(path string) (*domain.UploadedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return &domain.UploadedFile{
		Name:    fileBase(path),
		Type:    mimeTypeForPath(path),
		Content: string(data),
	}, nil
}

// printAction surfaces a structured suggestion the assistant attached to its
// reply.
func printAction(out io.Writer, action *assistant.Action) {
	if action == nil {
		return
	}
	var summary string
	switch action.Kind {
	case assistant.ActionCreateTask:
		summary = fmt.Sprintf("task %q", action.Task.Title)
	case assistant.ActionCreateClient:
		summary = fmt.Sprintf("client %q", action.Client.Name)
	case assistant.ActionCreateCarrier:
		summary = fmt.Sprintf("carrier %q", action.Carrier.Name)
	case assistant.ActionCreateInvoice:
		summary = fmt.Sprintf("invoice for %q (%.2f)", action.Invoice.ClientName, action.Invoice.TotalAmount)
	}
	fmt.Fprintf(out, "\n%s %s\n", formatter.StyleGreen.Render("→ Suggested:"), summary)
}

// maybeApplyTaskAction offers to add a suggested task to the task list.
// Only runs interactively; other action kinds are display-only since their
// entities live outside this tool.
func maybeApplyTaskAction(cmd *cobra.Command, app *App, action *assistant.Action) error {
	if action == nil || action.Kind != assistant.ActionCreateTask || !app.interactive() {
		return nil
	}

	apply := true
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Add task %q to your list?", action.Task.Title)).
		Value(&apply)
	if err := confirm.Run(); err != nil || !apply {
		return nil
	}

	task, err := app.Tasks.Add(context.Background(), domain.Task{
		Name:     action.Task.Title,
		Deadline: action.Task.DueDate,
	})
	if err != nil {
		warnPersistence(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", formatter.Bold(task.Name), formatter.TruncID(task.ID))
	return nil
}

func newChatListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			convs := app.Conversations.List()
			if len(convs) == 0 {
				fmt.Fprintln(out, formatter.Dim("No conversations yet."))
				return nil
			}

			currentID := app.Conversations.CurrentID()
			fmt.Fprintf(out, "%s\n", formatter.Header("Conversations"))
			for _, conv := range convs {
				marker := "  "
				if conv.ID == currentID {
					marker = formatter.StyleGreen.Render("▸ ")
				}
				line := fmt.Sprintf("%s%s  %s", marker, formatter.TruncID(conv.ID), formatter.Bold(conv.Title))
				if conv.LastMessage != "" {
					line += "  " + formatter.Dim(truncateLine(conv.LastMessage, 60))
				}
				if !conv.UpdatedAt.IsZero() {
					line += "  " + formatter.Dim(formatter.HumanTimestamp(conv.UpdatedAt))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newChatNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a fresh conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Conversations.ClearCurrent(ctx); err != nil {
				warnPersistence(cmd, err)
			}
			// A new chat starts clean: attached files belong to the session.
			if err := app.Files.Clear(ctx); err != nil {
				warnPersistence(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Next message starts a new conversation.")
			return nil
		},
	}
}

func newChatSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select CONVERSATION_ID",
		Short: "Make a conversation current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Conversations.Select(context.Background(), args[0]); err != nil {
				warnPersistence(cmd, err)
			}
			if app.Conversations.CurrentID() != args[0] {
				return fmt.Errorf("no conversation with id %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected conversation %s\n", args[0])
			return nil
		},
	}
}

func newChatExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [CONVERSATION_ID]",
		Short: "Export a conversation transcript to a text file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.Conversations.CurrentID()
			if len(args) > 0 {
				id = args[0]
			}
			if id == "" {
				return fmt.Errorf("no conversation to export")
			}

			transcript, err := app.Conversations.Export(id)
			if err != nil {
				return err
			}

			if outPath == "" {
				conv, _ := app.Conversations.Get(id)
				outPath = conversation.ExportFileName(conv)
			}
			if err := os.WriteFile(outPath, []byte(transcript), 0644); err != nil {
				return fmt.Errorf("writing transcript: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file path")
	return cmd
}

func newChatDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CONVERSATION_ID",
		Short: "Delete a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := app.Conversations.Get(args[0]); !ok {
				return fmt.Errorf("no conversation with id %q", args[0])
			}
			if err := app.Conversations.Delete(context.Background(), args[0]); err != nil {
				warnPersistence(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted conversation %s\n", args[0])
			return nil
		},
	}
}

func newChatHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history [CONVERSATION_ID]",
		Short: "Print a conversation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var conv *conversation.Conversation
			if len(args) > 0 {
				c, ok := app.Conversations.Get(args[0])
				if !ok {
					return fmt.Errorf("no conversation with id %q", args[0])
				}
				conv = c
			} else {
				conv = app.Conversations.Current()
				if conv == nil {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No current conversation."))
					return nil
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", formatter.Header(conv.Title))
			for _, msg := range conv.Messages {
				fmt.Fprintf(out, "%s %s\n%s\n\n",
					formatter.SenderLabel(msg.Sender),
					formatter.Dim(msg.Timestamp.Local().Format("2006-01-02 15:04")),
					msg.Content)
			}
			return nil
		},
	}
}

func truncateLine(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
