package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/okravets/freightdesk/internal/cli/formatter"
	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/timer"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		name, assignee, deadline string
		estimate                 float64
	)

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Create a new task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				name = args[0]
			}

			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("task name is required")
				}
				if err := runTaskForm(&name, &assignee, &deadline, &estimate); err != nil {
					return err
				}
			}
			if deadline != "" {
				if _, err := time.Parse("2006-01-02", deadline); err != nil {
					return fmt.Errorf("deadline must be YYYY-MM-DD")
				}
			}

			task, err := app.Tasks.Add(context.Background(), domain.Task{
				Name:         name,
				Assignee:     assignee,
				Deadline:     deadline,
				TimeEstimate: estimate,
			})
			if err != nil {
				warnPersistence(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", formatter.Bold(task.Name), formatter.TruncID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&assignee, "assignee", "", "Person responsible")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&estimate, "estimate", 0, "Time estimate in hours")

	return cmd
}

// runTaskForm collects task fields interactively.
func runTaskForm(name, assignee, deadline *string, estimate *float64) error {
	var estimateStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task name").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(name),
			huh.NewInput().
				Title("Assignee").
				Placeholder("optional").
				Value(assignee),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD, optional").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}).
				Value(deadline),
			huh.NewInput().
				Title("Estimate (hours)").
				Placeholder("optional").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return fmt.Errorf("must be a number")
					}
					return nil
				}).
				Value(&estimateStr),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}
	if estimateStr != "" {
		*estimate, _ = strconv.ParseFloat(estimateStr, 64)
	}
	return nil
}

func newTaskListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			list := app.Tasks.List()
			if len(list) == 0 {
				fmt.Fprintln(out, formatter.Dim("No tasks yet. Add one with: freightdesk task add"))
				return nil
			}

			fmt.Fprintf(out, "%s\n", formatter.Header("Tasks"))
			for _, task := range list {
				if !all && task.Status == domain.TaskCompleted {
					continue
				}
				line := fmt.Sprintf("  %s  %s  %s", formatter.TruncID(task.ID), formatter.TaskStatusPill(task.Status), task.Name)
				if task.Assignee != "" {
					line += "  " + formatter.Dim(task.Assignee)
				}
				if task.Deadline != "" {
					line += "  " + formatter.DeadlineStyled(task.Deadline)
				}
				if task.TimeSpent > 0 {
					line += "  " + formatter.Dim(timer.FormatSeconds(task.TimeSpent))
				} else if task.TimeEstimate > 0 {
					line += "  " + formatter.Dim("est "+formatter.FormatHours(task.TimeEstimate))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done TASK_ID",
		Short: "Mark a task as completed",
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
			if err := app.Tasks.UpdateStatus(ctx, taskID, domain.TaskCompleted, app.Timer.TimeSpent(taskID)); err != nil {
				warnPersistence(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", formatter.Bold(task.Name))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TASK_ID",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", args[0])
			return nil
		},
	}
}
