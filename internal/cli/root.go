// Package cli is the admin command line: sign in once, then manage projects
// and the contact inbox from the terminal.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/portfolio-site/portfolio-backend/internal/admin"
	"github.com/portfolio-site/portfolio-backend/internal/logging"
)

type app struct {
	backend Backend
	output  string
	logLvl  string
}

// NewRootCmd builds the command tree on top of backend.
func NewRootCmd(backend Backend) *cobra.Command {
	a := &app{backend: backend}

	root := &cobra.Command{
		Use:           "portfolio-admin",
		Short:         "Manage portfolio projects and contact messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := newPrinter(a.output, cmd.OutOrStdout()); err != nil {
				return err
			}
			log := logging.NewWithWriter("development", a.logLvl, cmd.ErrOrStderr())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(log.WithContext(ctx))
			log.Debug().Str("command", cmd.CommandPath()).Msg("start")
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "output format: table, json or yaml")
	root.PersistentFlags().StringVar(&a.logLvl, "log-level", "warn", "log level")

	root.AddCommand(a.loginCmd(), a.logoutCmd(), a.whoamiCmd())
	root.AddCommand(a.projectsCmd(), a.messagesCmd())
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute(ctx context.Context, backend Backend) {
	root := NewRootCmd(backend)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) printer(cmd *cobra.Command) *printer {
	p, _ := newPrinter(a.output, cmd.OutOrStdout())
	return p
}

func (a *app) sessions(ctx context.Context) (Sessions, error) {
	s, err := a.backend.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Restore(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("restore session")
	}
	return s, nil
}

// withConsole restores the saved session, opens the data backend and runs fn
// against a console bound to both.
func (a *app) withConsole(ctx context.Context, fn func(*admin.Console) error) error {
	sess, err := a.sessions(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	data, err := a.backend.Data(ctx)
	if err != nil {
		return err
	}
	if data.Close != nil {
		defer data.Close()
	}

	console := admin.NewConsole(sess, data.Projects, data.Messages)
	defer console.Close()
	return fn(console)
}
