package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amirasaad/finhub/infra"
	"github.com/amirasaad/finhub/infra/initializer"
	"github.com/amirasaad/finhub/internal/migrations"
	"github.com/amirasaad/finhub/pkg/app"
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/fatih/color"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  sweep                   run one overdue sweep now
  resolve <alias>         print the user behind a clerk id or email
  notifications <alias>   list a user's notifications, newest first
  migrate up|down         apply or revert the schema on DATABASE_URL`

var errUsage = errors.New("invalid arguments")

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		errColor.Fprintln(os.Stderr, "error:", err) //nolint: errcheck
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if args[0] == "migrate" {
		if len(args) != 2 {
			return errUsage
		}
		return migrate(cfg, args[1], out)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	// The sweep runs on demand here.
	cfg.Scheduler = &config.Scheduler{Enabled: false}
	a, err := app.New(deps, cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	runErr := execute(ctx, a, args, out)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	return errors.Join(runErr, a.Shutdown(shutdownCtx))
}

// execute runs one application command against a.
func execute(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	switch args[0] {
	case "sweep":
		res, err := a.LoanService.SweepOverdue(ctx, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
		okColor.Fprintf(out, "sweep finished: %d transitioned\n", res.Transitioned) //nolint: errcheck
		fmt.Fprintf(out, "scanned=%d skipped=%d failed=%d notify_failed=%d\n",
			res.Scanned, res.Skipped, res.Failed, res.NotifyFailed)
		if res.Failed > 0 || res.NotifyFailed > 0 {
			warnColor.Fprintln(out, "some loans were not processed; see the log") //nolint: errcheck
		}
		return nil
	case "resolve":
		if len(args) != 2 {
			return errUsage
		}
		u, err := a.UserService.Get(ctx, args[1])
		if err != nil {
			return err
		}
		okColor.Fprintln(out, u.ID) //nolint: errcheck
		fmt.Fprintf(out, "clerk_user_id=%s email=%s name=%q\n", u.ClerkUserID, u.Email, u.Name)
		return nil
	case "notifications":
		if len(args) != 2 {
			return errUsage
		}
		ns, err := a.NotificationService.ListForUser(ctx, args[1])
		if err != nil {
			return err
		}
		if len(ns) == 0 {
			warnColor.Fprintln(out, "no notifications") //nolint: errcheck
			return nil
		}
		for _, n := range ns {
			fmt.Fprintf(out, "%s  %-13s %s\n", n.CreatedAt.Format(time.RFC3339), n.Kind, n.Message)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func migrate(cfg *config.App, direction string, out io.Writer) error {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close() //nolint: errcheck

	switch direction {
	case "up":
		err = migrations.Up(sqlDB)
	case "down":
		err = migrations.Down(sqlDB)
	default:
		return fmt.Errorf("%w: migrate %q", errUsage, direction)
	}
	if err != nil {
		return err
	}
	okColor.Fprintf(out, "migrate %s: done\n", direction) //nolint: errcheck
	return nil
}
