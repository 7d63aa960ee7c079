package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hr-tools/punchbook/pkg/runtime/terminal"
	"github.com/hr-tools/punchbook/pkg/services/attendance"
	"github.com/hr-tools/punchbook/pkg/services/config"
	"github.com/hr-tools/punchbook/pkg/services/period"
	"github.com/hr-tools/punchbook/pkg/store"
	"github.com/hr-tools/punchbook/pkg/store/sqlite"
	"github.com/hr-tools/punchbook/pkg/store/xlsx"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("LEDGER_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if path := os.Getenv("LEDGER_PATH"); path != "" {
		cfg.Path = path
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	resolver := period.NewResolver(cfg.PeriodMode())
	ledgerCfg := cfg.Ledger()

	cli := terminal.NewCLI(terminal.Options{
		Recorder: attendance.NewRecorder(st, resolver, ledgerCfg),
		Reporter: attendance.NewReporter(st, resolver, ledgerCfg),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
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
