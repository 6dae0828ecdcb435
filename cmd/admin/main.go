package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/farellandr/encuentro/config"
	"github.com/farellandr/encuentro/internal/logger"
	"github.com/farellandr/encuentro/internal/repository/postgres"
	"github.com/farellandr/encuentro/internal/server"
	"github.com/joho/godotenv"
)

const usage = `usage: admin [-config path] <command> [email]

commands:
  confirm <email>   approve the attendee's pending payment
  reject <email>    reject the attendee's pending payment
  promote <email>   allow the account to check attendees in
  demote <email>    revoke check-in rights
  sweep             delete groups without members
  total             print the number of checked-in attendees
`

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to an optional YAML config file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	svc := server.NewServices(postgres.NewStore(db), cfg, zl)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, flag.Args(), svc, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

var errUsage = errors.New("invalid usage")

func run(ctx context.Context, args []string, svc *server.Services, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	command := args[0]
	email := ""
	switch command {
	case "confirm", "reject", "promote", "demote":
		if len(args) != 2 {
			return errUsage
		}
		email = args[1]
	case "sweep", "total":
		if len(args) != 1 {
			return errUsage
		}
	default:
		return errUsage
	}

	switch command {
	case "confirm", "reject":
		user, err := svc.Payments.ReviewPayment(ctx, email, command == "confirm")
		if err != nil {
			return fmt.Errorf("%s %s: %w", command, email, err)
		}
		fmt.Fprintf(out, "%s: payment status %s\n", user.Email, user.PaymentStatus.Label())
	case "promote", "demote":
		user, err := svc.Accounts.SetSpecial(ctx, email, command == "promote")
		if err != nil {
			return fmt.Errorf("%s %s: %w", command, email, err)
		}
		fmt.Fprintf(out, "%s: staff=%t\n", user.Email, user.IsSpecial)
	case "sweep":
		removed, err := svc.Membership.SweepEmptyGroups(ctx)
		if err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
		fmt.Fprintf(out, "removed %d empty groups\n", removed)
	case "total":
		total, err := svc.Attendance.TotalAttendance(ctx)
		if err != nil {
			return fmt.Errorf("total: %w", err)
		}
		fmt.Fprintf(out, "%d attendees checked in\n", total)
	}
	return nil
}
