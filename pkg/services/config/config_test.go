package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr-tools/punchbook/pkg/models/domain"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModeMonthly), cfg.Mode)
	assert.Equal(t, BackendXlsx, cfg.Backend)
	assert.Equal(t, "attendance.xlsx", cfg.Path)
	assert.Equal(t, "localhost:8080", cfg.Addr)
	assert.Equal(t, domain.DefaultOpTimeout, cfg.OpTimeout)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
mode: weekly
backend: sqlite
path: /var/lib/punchbook/ledger.db
addr: 0.0.0.0:9090
op_timeout: 10s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeWeekly, cfg.PeriodMode())
	assert.Equal(t, BackendSqlite, cfg.Backend)
	assert.Equal(t, "/var/lib/punchbook/ledger.db", cfg.Path)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.OpTimeout)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "backend: sqlite\npath: ledger.db\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModeMonthly), cfg.Mode)
	assert.Equal(t, BackendSqlite, cfg.Backend)
	assert.Equal(t, domain.DefaultOpTimeout, cfg.OpTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown mode", content: "mode: quarterly\n"},
		{name: "unknown backend", content: "backend: postgres\n"},
		{name: "non-positive timeout", content: "op_timeout: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLedger_CarriesTimeout(t *testing.T) {
	cfg := &Config{Mode: string(domain.ModeWeekly), OpTimeout: 5 * time.Second}
	ledger := cfg.Ledger()

	assert.Equal(t, domain.ModeWeekly, ledger.Mode)
	assert.Equal(t, 5*time.Second, ledger.OpTimeout)
	assert.Equal(t, 0, ledger.Layout.BucketBoundary)
}
