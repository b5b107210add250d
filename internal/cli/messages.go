package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/portfolio-site/portfolio-backend/internal/admin"
)

func (a *app) messagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"inbox", "m"},
		Short:   "Read and clean up contact messages",
	}
	cmd.AddCommand(a.messagesListCmd(), a.messagesReadCmd(), a.messagesDeleteCmd())
	return cmd
}

func (a *app) messagesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				if err := c.Select(cmd.Context(), admin.ViewMessages); err != nil {
					return err
				}
				items := c.Messages()
				return a.printer(cmd).print(items, []string{"ID", "FROM", "EMAIL", "READ", "RECEIVED", "MESSAGE"}, func() [][]string {
					rows := make([][]string, 0, len(items))
					for _, m := range items {
						read := "no"
						if m.Read {
							read = "yes"
						}
						rows = append(rows, []string{
							m.ID, m.Name, m.Email, read,
							m.CreatedAt.Local().Format(time.DateTime), preview(m.Message, 60),
						})
					}
					return rows
				})
			})
		},
	}
}

func (a *app) messagesReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				res, err := c.MarkRead(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				warnReload(cmd, res.ReloadErr)
				a.printer(cmd).line("Marked %s as read", args[0])
				return nil
			})
		},
	}
}

func (a *app) messagesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				res, err := c.DeleteMessage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				warnReload(cmd, res.ReloadErr)
				a.printer(cmd).line("Deleted %s", args[0])
				return nil
			})
		},
	}
}

// preview flattens newlines and cuts s to at most n runes.
func preview(s string, n int) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\r' || c == '\t' {
			r[i] = ' '
		}
	}
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return string(r)
}
