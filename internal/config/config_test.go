package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// clearEnv neutralizes ambient overrides so tests see file values only.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "SYMBOLS", "CRON_DAILY", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  bot_token: tok
  chat_id: "42"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"SPX500"}, cfg.Symbols)
	assert.Equal(t, "0 0 22 * * 1-5", cfg.Schedule.DailyCron)
	assert.Equal(t, 300, cfg.LookbackDays)
	assert.Equal(t, 20, cfg.Indicators.SMAPeriod)
	assert.Equal(t, 12, cfg.Indicators.EMAShort)
	assert.Equal(t, 26, cfg.Indicators.EMALong)
	assert.Equal(t, 14, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 2.0, cfg.Indicators.BollMult)
	assert.Equal(t, 30.0, cfg.Indicators.RSIBuy)
	assert.Equal(t, 70.0, cfg.Indicators.RSISell)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileValuesKept(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  bot_token: tok
  chat_id: "42"
symbols: [AAPL, MSFT]
indicators:
  rsi_period: 7
  boll_mult: 2.5
lookback_days: 90
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Symbols)
	assert.Equal(t, 7, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 2.5, cfg.Indicators.BollMult)
	assert.Equal(t, 90, cfg.LookbackDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  bot_token: from_file
  chat_id: "42"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from_env")
	t.Setenv("SYMBOLS", "TSLA, NVDA")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Telegram.BotToken)
	assert.Equal(t, []string{"TSLA", "NVDA"}, cfg.Symbols)
}

func TestValidate_MissingRequired(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
