package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/portfolio-site/portfolio-backend/config"
	"github.com/portfolio-site/portfolio-backend/internal/bootstrap"
	"github.com/portfolio-site/portfolio-backend/internal/logging"
)

type auditFunc func(ctx context.Context, out io.Writer, schedule string) error

func newRootCmd(audit auditFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "worker",
		Short:         "Background jobs for the portfolio backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var schedule string
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Report bucket objects no project references",
		Long: `Without --schedule the audit runs once and prints one orphaned path per line.
With --schedule it logs every run on a six-field cron spec until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return audit(cmd.Context(), cmd.OutOrStdout(), schedule)
		},
	}
	auditCmd.Flags().StringVar(&schedule, "schedule", "", "six-field cron spec; empty runs once")

	root.AddCommand(auditCmd)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(runAudit).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runAudit(ctx context.Context, out io.Writer, schedule string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.App.Environment, cfg.App.LogLevel).With().Str("service", "portfolio-worker").Logger()
	ctx = log.WithContext(ctx)

	db, err := bootstrap.OpenSQL(ctx, &cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := bootstrap.OpenObjectStore(ctx, &cfg.Storage)
	if err != nil {
		return err
	}
	auditor := bootstrap.NewServices(db, store, &cfg.Storage, log).Auditor

	if schedule == "" {
		orphans, err := auditor.Orphans(ctx)
		if err != nil {
			return err
		}
		for _, p := range orphans {
			fmt.Fprintln(out, p)
		}
		return nil
	}

	stopAudit, err := auditor.Schedule(schedule)
	if err != nil {
		return err
	}
	<-ctx.Done()
	stopAudit()
	return nil
}
