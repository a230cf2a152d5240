package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okravets/freightdesk/internal/cli/formatter"
)

func newFileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Manage files attached to the chat session",
	}

	cmd.AddCommand(
		newFileAddCmd(app),
		newFileListCmd(app),
		newFileRemoveCmd(app),
		newFileClearCmd(app),
	)

	return cmd
}

func newFileAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add PATH",
		Short: "Attach a file for later chat turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readUploadedFile(args[0])
			if err != nil {
				return err
			}
			if err := app.Files.Save(context.Background(), *file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s)\n", formatter.Bold(file.Name), file.Type)
			return nil
		},
	}
}

func newFileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List attached files",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			metas, err := app.Files.List(context.Background())
			if err != nil {
				return err
			}
			if len(metas) == 0 {
				fmt.Fprintln(out, formatter.Dim("No attached files."))
				return nil
			}

			fmt.Fprintf(out, "%s\n", formatter.Header("Attached files"))
			for _, m := range metas {
				fmt.Fprintf(out, "  %s  %s  %s\n",
					formatter.Bold(m.Name),
					formatter.Dim(fmt.Sprintf("%s, %d bytes", m.Type, m.Size)),
					formatter.Dim(formatter.HumanTimestamp(m.UploadedAt)))
			}
			return nil
		},
	}
}

func newFileRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an attached file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Files.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newFileClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all attached files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Files.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared attached files.")
			return nil
		},
	}
}
