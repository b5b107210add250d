package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

type sessionView struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func viewOf(s *authdomain.Session) sessionView {
	return sessionView{UID: s.UID, Email: s.Email, ExpiresAt: s.ExpiresAt}
}

func (a *app) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as the admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			sess, err := a.backend.Sessions(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			s, err := sess.SignIn(ctx, email, password)
			if err != nil {
				return err
			}
			v := viewOf(s)
			return a.printer(cmd).print(v, nil, func() [][]string {
				return [][]string{{fmt.Sprintf("Signed in as %s (expires %s)", v.Email, v.ExpiresAt.Local().Format(time.RFC822))}}
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.SignOut(cmd.Context()); err != nil {
				// local state is already cleared at this point
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: provider sign-out failed:", err)
			}
			a.printer(cmd).line("Signed out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			s := sess.CurrentSession()
			if s == nil {
				return authdomain.ErrNoSession
			}
			v := viewOf(s)
			return a.printer(cmd).print(v, []string{"UID", "EMAIL", "EXPIRES"}, func() [][]string {
				return [][]string{{v.UID, v.Email, v.ExpiresAt.Local().Format(time.RFC3339)}}
			})
		},
	}
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise, so the password can be piped in.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
