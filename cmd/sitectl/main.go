// Command sitectl edits and seeds site content from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atedres/boldnet-sub000/internal/app"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/config"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/logger"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/realtime"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sqlitePath string
	logLevel   string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Manage site content from the terminal",
	Long: `sitectl works on the same store as the site server.

By default the database comes from config.toml and SITE_* environment
variables. Pass --sqlite to work on a local sqlite file instead; its
tables are created on first use.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "Use the sqlite database at this path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is an open store plus the services over it
type session struct {
	services *app.Services
	log      *zap.Logger
	closers  []func() error
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Warn("Error during shutdown", zap.Error(err))
		}
	}
	_ = logger.Sync(s.log)
}

// openSession connects to the configured store. Writes are announced on the
// live update channel so a running server pushes them to its clients.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "15:04:05",
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	s := &session{log: log}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	var db *persistence.Database
	if sqlitePath != "" {
		db, err = persistence.OpenSQLite(sqlitePath, gormLogger)
	} else {
		db, err = persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(logLevel))
		if err == nil && cfg.Database.Driver == "sqlite" {
			err = persistence.AutoMigrate(db.DB)
		}
	}
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.closers = append(s.closers, db.Close)

	notifier := realtime.NewNotifier(ctx, cfg.Realtime, cfg.Redis, log)
	s.closers = append(s.closers, notifier.Close)

	s.services = app.NewServices(persistence.NewRepositories(db.DB), app.Deps{
		Publisher: notifier,
		Logger:    log,
	})
	return s, nil
}
