// Command admin is the back-office CLI for Labour Department staff.
package main

import (
	"fmt"
	"labourdesk/backend/internal/auth"
	"labourdesk/backend/internal/complaint"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/localization"
	"labourdesk/backend/internal/logging"
	"labourdesk/backend/internal/notify"
	"labourdesk/backend/internal/storage"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Shared resources, opened lazily by commands that need the database.
var (
	cfg    *config.Config
	logger *zap.Logger
	store  *storage.Service
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Keep the CLI output readable.
	logger, err = logging.New("error")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "admin",
		Short: "Labour Department back-office tool",
		Long: `Back-office commands for the complaint intake service.

Available commands:
  migrate       - Create or update the database tables
  health        - Check database and Redis connectivity
  issue-token   - Mint a staff bearer token for the API
  list          - List complaints
  set-status    - Move a complaint along its lifecycle
  assign        - Assign a complaint to a staff member
  set-priority  - Change a complaint's priority`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(issueTokenCmd(auth.NewAuthenticator(cfg.JWTSecret)))
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(setStatusCmd())
	rootCmd.AddCommand(assignCmd())
	rootCmd.AddCommand(setPriorityCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStorage connects to PostgreSQL, and to Redis when withRedis is set.
func openStorage(withRedis bool) (*storage.Service, error) {
	if store != nil {
		return store, nil
	}
	db, err := storage.OpenPostgres(cfg.Database)
	if err != nil {
		return nil, err
	}
	s := storage.NewStorageService(db, nil)
	if withRedis {
		rdb, err := storage.OpenRedis(rootContext(), cfg.Redis)
		if err != nil {
			return nil, err
		}
		s.Redis = rdb
	}
	store = s
	return store, nil
}

// complaintService builds a service that notifies complainants of status
// changes before the command exits.
func complaintService() (*complaint.Service, error) {
	s, err := openStorage(cfg.Redis.Enabled())
	if err != nil {
		return nil, err
	}
	dispatcher, err := complaintDispatcher(s)
	if err != nil {
		return nil, err
	}
	svc := complaint.NewService(s, dispatcher, logger)
	svc.SyncNotify = true
	return svc, nil
}

// complaintDispatcher hands jobs to the API server's Redis worker when a
// queue is configured and otherwise emails directly.
func complaintDispatcher(s *storage.Service) (notify.Dispatcher, error) {
	if s.Redis != nil {
		return notify.NewRedisQueue(s.Redis), nil
	}
	loc, err := localization.Default()
	if err != nil {
		return nil, err
	}
	return &notify.InlineDispatcher{Senders: notify.Senders{
		notify.ChannelEmail: notify.NewMailer(cfg.SMTP, cfg.SupportHotline, loc, logger),
	}}, nil
}
