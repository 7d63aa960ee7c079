package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/hr-tools/punchbook/pkg/models/domain"
)

const (
	BackendXlsx   = "xlsx"
	BackendSqlite = "sqlite"
)

// Config is the file-level configuration of the ledger service.
type Config struct {
	Mode      string        `mapstructure:"mode"`
	Backend   string        `mapstructure:"backend"`
	Path      string        `mapstructure:"path"`
	Addr      string        `mapstructure:"addr"`
	OpTimeout time.Duration `mapstructure:"op_timeout"`
}

// Load reads the config file at path, falling back to defaults for
// everything the file omits. An empty path yields pure defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("mode", string(domain.ModeMonthly))
	v.SetDefault("backend", BackendXlsx)
	v.SetDefault("path", "attendance.xlsx")
	v.SetDefault("addr", "localhost:8080")
	v.SetDefault("op_timeout", domain.DefaultOpTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ledger config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch domain.PeriodMode(c.Mode) {
	case domain.ModeMonthly, domain.ModeWeekly:
	default:
		return fmt.Errorf("unsupported period mode %q", c.Mode)
	}
	switch c.Backend {
	case BackendXlsx, BackendSqlite:
	default:
		return fmt.Errorf("unsupported backend %q", c.Backend)
	}
	if c.OpTimeout <= 0 {
		return fmt.Errorf("op_timeout must be positive, got %s", c.OpTimeout)
	}
	return nil
}

func (c *Config) PeriodMode() domain.PeriodMode {
	return domain.PeriodMode(c.Mode)
}

// Ledger maps the file config onto the engine's configuration.
func (c *Config) Ledger() domain.LedgerConfig {
	cfg := domain.DefaultLedgerConfig(c.PeriodMode())
	cfg.OpTimeout = c.OpTimeout
	return cfg
}
