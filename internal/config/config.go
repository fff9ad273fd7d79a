package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Sources struct {
		ESPNBaseURL    string `yaml:"espn_base_url"`
		OddsAPIBaseURL string `yaml:"odds_api_base_url"`
		OddsAPIKey     string `yaml:"odds_api_key"`
	} `yaml:"sources"`
	Schedule struct {
		MorningCron string `yaml:"morning_cron"`
		PregameCron string `yaml:"pregame_cron"`
		NightlyCron string `yaml:"nightly_cron"`
	} `yaml:"schedule"`
	Bankroll struct {
		Amount           float64 `yaml:"amount"`
		KellyFraction    float64 `yaml:"kelly_fraction"`
		MaxStakeFraction float64 `yaml:"max_stake_fraction"`
		StateFile        string  `yaml:"state_file"`
	} `yaml:"bankroll"`
	Thresholds struct {
		MinEdge          float64 `yaml:"min_edge"`
		MinRunsForValue  float64 `yaml:"min_runs_for_value"`
		MinWinPct        float64 `yaml:"min_win_pct"`
		MinOddsFloor     int     `yaml:"min_odds_floor"`
		HighProbOverride float64 `yaml:"high_prob_override"`
		TotalsConfidence float64 `yaml:"totals_confidence"`
		RequireBoth      bool    `yaml:"require_both_guards"`
	} `yaml:"thresholds"`
	Parlay struct {
		MinProbability float64 `yaml:"min_probability"`
		MaxLegs        int     `yaml:"max_legs"`
		TopK           int     `yaml:"top_k"`
		ReferenceStake float64 `yaml:"reference_stake"`
	} `yaml:"parlay"`
	Cache struct {
		ScheduleTTLSeconds int `yaml:"schedule_ttl_seconds"`
		QuotesTTLSeconds   int `yaml:"quotes_ttl_seconds"`
		FormTTLSeconds     int `yaml:"form_ttl_seconds"`
		FallbackSeconds    int `yaml:"fallback_seconds"`
	} `yaml:"cache"`
	Database struct {
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
	if v := os.Getenv("ODDS_API_KEY"); v != "" {
		cfg.Sources.OddsAPIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("BANKROLL"); v != "" {
		var amount float64
		if _, err := fmt.Sscanf(v, "%f", &amount); err == nil {
			cfg.Bankroll.Amount = amount
		}
	}
	if v := os.Getenv("CRON_MORNING"); v != "" {
		cfg.Schedule.MorningCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Schedule.MorningCron == "" {
		cfg.Schedule.MorningCron = "0 0 10 * * *"
	}
	if cfg.Schedule.PregameCron == "" {
		cfg.Schedule.PregameCron = "0 0 17 * * *"
	}
	if cfg.Schedule.NightlyCron == "" {
		cfg.Schedule.NightlyCron = "0 0 3 * * *"
	}
	if cfg.Bankroll.Amount == 0 {
		cfg.Bankroll.Amount = 10000
	}
	if cfg.Bankroll.KellyFraction == 0 {
		cfg.Bankroll.KellyFraction = 0.25
	}
	if cfg.Bankroll.MaxStakeFraction == 0 {
		cfg.Bankroll.MaxStakeFraction = 0.05
	}
	if cfg.Bankroll.StateFile == "" {
		cfg.Bankroll.StateFile = "data/bankroll.json"
	}
	if cfg.Thresholds.MinEdge == 0 {
		cfg.Thresholds.MinEdge = 0.03
	}
	if cfg.Thresholds.MinRunsForValue == 0 {
		cfg.Thresholds.MinRunsForValue = 4.5
	}
	if cfg.Thresholds.MinWinPct == 0 {
		cfg.Thresholds.MinWinPct = 0.65
	}
	if cfg.Thresholds.MinOddsFloor == 0 {
		cfg.Thresholds.MinOddsFloor = -250
	}
	if cfg.Thresholds.HighProbOverride == 0 {
		cfg.Thresholds.HighProbOverride = 0.70
	}
	if cfg.Thresholds.TotalsConfidence == 0 {
		cfg.Thresholds.TotalsConfidence = 0.60
	}
	if cfg.Parlay.MinProbability == 0 {
		cfg.Parlay.MinProbability = 0.60
	}
	if cfg.Parlay.MaxLegs == 0 {
		cfg.Parlay.MaxLegs = 4
	}
	if cfg.Parlay.TopK == 0 {
		cfg.Parlay.TopK = 3
	}
	if cfg.Parlay.ReferenceStake == 0 {
		cfg.Parlay.ReferenceStake = 100
	}
	if cfg.Cache.ScheduleTTLSeconds == 0 {
		cfg.Cache.ScheduleTTLSeconds = 60
	}
	if cfg.Cache.QuotesTTLSeconds == 0 {
		cfg.Cache.QuotesTTLSeconds = 300
	}
	if cfg.Cache.FormTTLSeconds == 0 {
		cfg.Cache.FormTTLSeconds = 3600
	}
	if cfg.Cache.FallbackSeconds == 0 {
		cfg.Cache.FallbackSeconds = 1800
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/dugout_edge.db"
	}
}

// Validate checks that all required fields are set and thresholds are sane.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Sources.OddsAPIKey == "" {
		return fmt.Errorf("sources.odds_api_key is required")
	}
	if c.Bankroll.Amount <= 0 {
		return fmt.Errorf("bankroll.amount must be positive")
	}
	if c.Bankroll.KellyFraction <= 0 || c.Bankroll.KellyFraction > 1 {
		return fmt.Errorf("bankroll.kelly_fraction must be in (0, 1]")
	}
	if c.Bankroll.MaxStakeFraction <= 0 || c.Bankroll.MaxStakeFraction > 1 {
		return fmt.Errorf("bankroll.max_stake_fraction must be in (0, 1]")
	}
	if c.Thresholds.MinOddsFloor >= 0 {
		return fmt.Errorf("thresholds.min_odds_floor must be negative")
	}
	if c.Parlay.MinProbability <= 0 || c.Parlay.MinProbability >= 1 {
		return fmt.Errorf("parlay.min_probability must be in (0, 1)")
	}
	if c.Parlay.MaxLegs < 2 {
		return fmt.Errorf("parlay.max_legs must be at least 2")
	}
	return nil
}
