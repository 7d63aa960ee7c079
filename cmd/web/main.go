package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hr-tools/punchbook/pkg/server"
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
		Use:   "web",
		Short: "Start the web server for the attendance ledger",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the ledger config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if path := os.Getenv("LEDGER_PATH"); path != "" {
		cfg.Path = path
	}
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	resolver := period.NewResolver(cfg.PeriodMode())
	ledgerCfg := cfg.Ledger()
	recorder := attendance.NewRecorder(st, resolver, ledgerCfg)
	reporter := attendance.NewReporter(st, resolver, ledgerCfg)

	logger.Info().
		Str("backend", cfg.Backend).
		Str("path", cfg.Path).
		Str("mode", cfg.Mode).
		Msg("attendance ledger ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr: cfg.Addr,
		Dependencies: server.Dependencies{
			Recorder: recorder,
			Reporter: reporter,
		},
	})
	return api.Start()
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
