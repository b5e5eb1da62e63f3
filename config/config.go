package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable server parameters.
type Config struct {
	WSPort        int `json:"ws_port"`
	MaxNameLength int `json:"max_name_length"`

	// BotDelayMS is the pause before each bot action, so a human opponent
	// can follow what is happening.
	BotDelayMS int `json:"bot_delay_ms"`

	// RoomIdleTimeoutSec is how long a room with no bound seats survives
	// before the registry sweep closes it. <= 0 disables the sweep.
	RoomIdleTimeoutSec int `json:"room_idle_timeout_sec"`

	// SweepIntervalSec is how often the registry scans for idle rooms.
	SweepIntervalSec int `json:"sweep_interval_sec"`

	// DatabaseURL enables the duel history store when set (env only).
	DatabaseURL string `json:"-"`

	// AuthBaseURL enables JWT validation on join when set (env only).
	AuthBaseURL string `json:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		WSPort:             8080,
		MaxNameLength:      24,
		BotDelayMS:         800,
		RoomIdleTimeoutSec: 600,
		SweepIntervalSec:   60,
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideInt(&cfg.MaxNameLength, "MAX_NAME_LENGTH")
	overrideInt(&cfg.BotDelayMS, "BOT_DELAY_MS")
	overrideInt(&cfg.RoomIdleTimeoutSec, "ROOM_IDLE_TIMEOUT_SEC")
	overrideInt(&cfg.SweepIntervalSec, "SWEEP_INTERVAL_SEC")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.AuthBaseURL, "AUTH_BASE_URL")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
