package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okravets/freightdesk/internal/cli/formatter"
	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/timer"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Track time against tasks",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerStopCmd(app),
		newTimerStatusCmd(app),
		newTimerCompleteCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start TASK_ID",
		Short: "Start or resume the timer for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, ok := app.Tasks.Get(args[0])
			if !ok {
				return fmt.Errorf("no task with id %q", args[0])
			}

			if err := app.Timer.Start(ctx, task); err != nil {
				warnPersistence(cmd, err)
			}
			if task.Status == domain.TaskNotStarted {
				if err := app.Tasks.UpdateStatus(ctx, task.ID, domain.TaskInProgress, 0); err != nil {
					warnPersistence(cmd, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Timer running for %s\n", formatter.Bold(task.Name))
			return nil
		},
	}
}

func newTimerStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Pause the timer, keeping the active task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Timer.State() != timer.StateRunning {
				fmt.Fprintln(cmd.OutOrStdout(), "Timer is not running.")
				return nil
			}
			if err := app.Timer.Stop(context.Background()); err != nil {
				warnPersistence(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timer paused at %s\n", app.Timer.ElapsedFormatted())
			return nil
		},
	}
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the timer state and per-task totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch app.Timer.State() {
			case timer.StateIdle:
				fmt.Fprintln(out, formatter.Dim("Timer idle, no active task."))
			case timer.StateRunning:
				active := app.Timer.ActiveTask()
				fmt.Fprintf(out, "%s  %s  %s\n",
					formatter.StyleGreen.Render("● Running"),
					formatter.Bold(active.Name),
					app.Timer.ElapsedFormatted())
			case timer.StatePaused:
				active := app.Timer.ActiveTask()
				fmt.Fprintf(out, "%s  %s  %s\n",
					formatter.StyleYellow.Render("○ Paused"),
					formatter.Bold(active.Name),
					app.Timer.ElapsedFormatted())
			}

			history := app.Timer.History()
			if len(history) == 0 {
				return nil
			}
			fmt.Fprintf(out, "\n%s\n", formatter.Header("Tracked"))
			for _, task := range app.Tasks.List() {
				secs, ok := history[task.ID]
				if !ok {
					continue
				}
				fmt.Fprintf(out, "  %s  %s  %s\n",
					formatter.TruncID(task.ID), task.Name, timer.FormatSeconds(secs))
			}
			return nil
		},
	}
}

func newTimerCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete TASK_ID",
		Short: "Complete a task, flushing its tracked time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID := args[0]
			task, ok := app.Tasks.Get(taskID)
			if !ok {
				return fmt.Errorf("no task with id %q", taskID)
			}

			if err := app.Timer.Complete(ctx, taskID); err != nil {
				warnPersistence(cmd, err)
			}
			spent := app.Timer.TimeSpent(taskID)
			if err := app.Tasks.UpdateStatus(ctx, taskID, domain.TaskCompleted, spent); err != nil {
				warnPersistence(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s (%s tracked)\n",
				formatter.Bold(task.Name), timer.FormatSeconds(spent))
			return nil
		},
	}
}

// warnPersistence reports a storage failure without failing the command.
// State changes apply in memory first, so the operation itself succeeded.
func warnPersistence(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
}
