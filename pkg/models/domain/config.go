package domain

import "time"

// LayoutConfig carries the ledger layout constants that used to be
// hard-coded: header row count, fields per day-slot, and the day-slot
// boundary splitting a period into aggregate buckets (0 means a single
// bucket spanning the whole period).
type LayoutConfig struct {
	HeaderRows     int
	FieldsPerDay   int
	BucketBoundary int
}

// LayoutFor returns the layout constants for a period mode: monthly
// sheets split totals at day 15, weekly sheets keep a single total.
func LayoutFor(mode PeriodMode) LayoutConfig {
	cfg := LayoutConfig{
		HeaderRows:   2,
		FieldsPerDay: 3,
	}
	if mode == ModeMonthly {
		cfg.BucketBoundary = 15
	}
	return cfg
}

const DefaultOpTimeout = 30 * time.Second

// LedgerConfig is everything the recorder needs besides a store.
type LedgerConfig struct {
	Mode      PeriodMode
	Layout    LayoutConfig
	OpTimeout time.Duration
}

func DefaultLedgerConfig(mode PeriodMode) LedgerConfig {
	return LedgerConfig{
		Mode:      mode,
		Layout:    LayoutFor(mode),
		OpTimeout: DefaultOpTimeout,
	}
}
