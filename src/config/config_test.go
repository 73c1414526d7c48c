package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Setenv("TEST_MONGO_URI", "mongodb://db:27017")

	cfg := Defaults()
	err := Parse([]byte(`
mongo:
  uri: ${TEST_MONGO_URI}
  database: Timeclock
jwt:
  ttl: 2h
timeclock:
  fallback_header_row: 7
  shift_gap_hours: 12
`), cfg)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "Timeclock", cfg.Mongo.Database)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 7, cfg.Timeclock.FallbackHeaderRow)
	assert.Equal(t, 12.0, cfg.Timeclock.ShiftGapHours)
	// ค่าที่ไม่ได้ระบุยังเป็น default
	assert.Equal(t, "Emp Name", cfg.Timeclock.AnchorLabel)
	assert.Equal(t, "filtered_shift_data.xlsx", cfg.Timeclock.OutputFilename)
}

func TestParseUnsetPlaceholders(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Parse([]byte(`
redis:
  addr: ${SHIFTFILTER_UNSET_VAR}
jwt:
  secret: "${SHIFTFILTER_UNSET_SECRET}"
mongo:
  database: ""
`), cfg))

	assert.Empty(t, cfg.Redis.Addr)
	assert.NotContains(t, cfg.JWT.Secret, "${")
	assert.Equal(t, Defaults().JWT.Secret, cfg.JWT.Secret)
	assert.Equal(t, "ShiftFilterDB", cfg.Mongo.Database)
}

func TestLoadSecretFromPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt:\n  secret: \"${SHIFTFILTER_TEST_SECRET}\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SHIFT_GAP_HOURS", "")
	t.Setenv("SHIFTFILTER_TEST_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9000\"\ntimeclock:\n  anchor_label: Employee\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_URI", "")
	t.Setenv("HEADER_ANCHOR", "")
	t.Setenv("SHIFT_GAP_HOURS", "9.5")
	t.Setenv("JWT_TTL", "")
	t.Setenv("HEADER_FALLBACK_ROW", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "Employee", cfg.Timeclock.AnchorLabel)
	assert.Equal(t, 9.5, cfg.Timeclock.ShiftGapHours)

	opts := cfg.TimeclockOptions()
	assert.Equal(t, "Employee", opts.AnchorLabel)
	assert.Equal(t, 11, opts.FallbackHeaderRow)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SHIFT_GAP_HOURS", "ten")

	_, err := Load()
	assert.Error(t, err)
}
