package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Symbols  []string `yaml:"symbols"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Indicators struct {
		SMAPeriod  int     `yaml:"sma_period"`
		EMAShort   int     `yaml:"ema_short"`
		EMALong    int     `yaml:"ema_long"`
		RSIPeriod  int     `yaml:"rsi_period"`
		BollPeriod int     `yaml:"boll_period"`
		BollMult   float64 `yaml:"boll_mult"`
		MACDShort  int     `yaml:"macd_short"`
		MACDLong   int     `yaml:"macd_long"`
		MACDSignal int     `yaml:"macd_signal"`
		ATRPeriod  int     `yaml:"atr_period"`
		RSIBuy     float64 `yaml:"rsi_buy"`
		RSISell    float64 `yaml:"rsi_sell"`
	} `yaml:"indicators"`
	LookbackDays   int    `yaml:"lookback_days"`
	RunTimeoutSecs int    `yaml:"run_timeout_secs"`
	Workers        int    `yaml:"workers"`
	StateFile      string `yaml:"state_file"`
	Database       struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Symbols = append(cfg.Symbols, s)
			}
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = []string{"SPX500"}
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.LookbackDays == 0 {
		cfg.LookbackDays = 300
	}
	if cfg.RunTimeoutSecs == 0 {
		cfg.RunTimeoutSecs = 120
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "data/signal_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trendscout.db"
	}

	ind := &cfg.Indicators
	if ind.SMAPeriod == 0 {
		ind.SMAPeriod = 20
	}
	if ind.EMAShort == 0 {
		ind.EMAShort = 12
	}
	if ind.EMALong == 0 {
		ind.EMALong = 26
	}
	if ind.RSIPeriod == 0 {
		ind.RSIPeriod = 14
	}
	if ind.BollPeriod == 0 {
		ind.BollPeriod = 20
	}
	if ind.BollMult == 0 {
		ind.BollMult = 2.0
	}
	if ind.MACDShort == 0 {
		ind.MACDShort = 12
	}
	if ind.MACDLong == 0 {
		ind.MACDLong = 26
	}
	if ind.MACDSignal == 0 {
		ind.MACDSignal = 9
	}
	if ind.ATRPeriod == 0 {
		ind.ATRPeriod = 14
	}
	if ind.RSIBuy == 0 {
		ind.RSIBuy = 30
	}
	if ind.RSISell == 0 {
		ind.RSISell = 70
	}

	return cfg, nil
}

// Validate checks that all required fields are set. Indicator parameter
// constraints are enforced separately when the pipeline engine is built.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}
	if c.LookbackDays < 1 {
		return fmt.Errorf("lookback_days must be positive")
	}
	return nil
}
