package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hr-tools/punchbook/pkg/runtime/telegram"
	"github.com/hr-tools/punchbook/pkg/services/attendance"
	"github.com/hr-tools/punchbook/pkg/services/config"
	"github.com/hr-tools/punchbook/pkg/services/period"
	"github.com/hr-tools/punchbook/pkg/store"
	"github.com/hr-tools/punchbook/pkg/store/sqlite"
	"github.com/hr-tools/punchbook/pkg/store/xlsx"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "bot",
		Short: "Start the Telegram front end for the attendance ledger",
		RunE:  runBot,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the ledger config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runBot(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if path := os.Getenv("LEDGER_PATH"); path != "" {
		cfg.Path = path
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	recorder := attendance.NewRecorder(st, period.NewResolver(cfg.PeriodMode()), cfg.Ledger())

	bot, err := telegram.NewBot(telegram.Options{
		Token:    token,
		Recorder: recorder,
	})
	if err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	logger.Info().
		Str("backend", cfg.Backend).
		Str("path", cfg.Path).
		Str("mode", cfg.Mode).
		Msg("attendance ledger ready")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return bot.Run(logger.WithContext(ctx))
}

func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendSqlite:
		db, err := sqlite.NewDB(sqlite.Settings{DbPath: cfg.Path})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		st, err := sqlite.NewStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return st, func() { _ = db.Close() }, nil
	default:
		st, err := xlsx.NewStore(xlsx.Settings{Path: cfg.Path})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open workbook store: %w", err)
		}
		return st, func() { _ = st.Close() }, nil
	}
}
