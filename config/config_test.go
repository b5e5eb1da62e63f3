package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.WSPort != 8080 {
		t.Errorf("expected WSPort=8080, got %d", cfg.WSPort)
	}
	if cfg.MaxNameLength != 24 {
		t.Errorf("expected MaxNameLength=24, got %d", cfg.MaxNameLength)
	}
	if cfg.BotDelayMS != 800 {
		t.Errorf("expected BotDelayMS=800, got %d", cfg.BotDelayMS)
	}
	if cfg.RoomIdleTimeoutSec != 600 {
		t.Errorf("expected RoomIdleTimeoutSec=600, got %d", cfg.RoomIdleTimeoutSec)
	}
	if cfg.SweepIntervalSec != 60 {
		t.Errorf("expected SweepIntervalSec=60, got %d", cfg.SweepIntervalSec)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("WS_PORT", "9090")
	os.Setenv("BOT_DELAY_MS", "50")
	os.Setenv("ROOM_IDLE_TIMEOUT_SEC", "30")
	defer func() {
		os.Unsetenv("WS_PORT")
		os.Unsetenv("BOT_DELAY_MS")
		os.Unsetenv("ROOM_IDLE_TIMEOUT_SEC")
	}()

	cfg := Load()

	if cfg.WSPort != 9090 {
		t.Errorf("expected WSPort=9090 after env override, got %d", cfg.WSPort)
	}
	if cfg.BotDelayMS != 50 {
		t.Errorf("expected BotDelayMS=50 after env override, got %d", cfg.BotDelayMS)
	}
	if cfg.RoomIdleTimeoutSec != 30 {
		t.Errorf("expected RoomIdleTimeoutSec=30 after env override, got %d", cfg.RoomIdleTimeoutSec)
	}
	if cfg.MaxNameLength != 24 {
		t.Errorf("expected MaxNameLength default, got %d", cfg.MaxNameLength)
	}
}

func TestLoadIgnoresInvalidEnv(t *testing.T) {
	os.Setenv("WS_PORT", "not-a-number")
	defer os.Unsetenv("WS_PORT")

	cfg := Load()
	if cfg.WSPort != 8080 {
		t.Errorf("invalid env value must keep the default, got %d", cfg.WSPort)
	}
}
