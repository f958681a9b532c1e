package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "REDIS_ADDR", "REDIS_USERNAME", "REDIS_PASSWORD",
		"MAX_PLAYERS", "MIN_PLAYERS", "DEFAULT_ROUNDS", "DEFAULT_TIME_LIMIT",
	} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Port != "8080" {
		t.Errorf("Port = %q, want 8080", c.Port)
	}
	if c.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", c.RedisAddr)
	}
	if c.MaxPlayers != 8 || c.MinPlayers != 2 {
		t.Errorf("player limits = %d/%d, want 8/2", c.MaxPlayers, c.MinPlayers)
	}
	if c.DefaultRounds != 3 || c.DefaultTimeLimit != 60 {
		t.Errorf("game defaults = %d/%d, want 3/60", c.DefaultRounds, c.DefaultTimeLimit)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("MAX_PLAYERS", "12")
	t.Setenv("DEFAULT_TIME_LIMIT", "90")
	c := FromEnv()
	if c.Port != "3000" {
		t.Errorf("Port = %q, want 3000", c.Port)
	}
	if c.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", c.RedisAddr)
	}
	if c.MaxPlayers != 12 {
		t.Errorf("MaxPlayers = %d, want 12", c.MaxPlayers)
	}
	if c.DefaultTimeLimit != 90 {
		t.Errorf("DefaultTimeLimit = %d, want 90", c.DefaultTimeLimit)
	}
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("MAX_PLAYERS", "lots")
	c := FromEnv()
	if c.MaxPlayers != 8 {
		t.Errorf("MaxPlayers = %d, want default 8 on parse failure", c.MaxPlayers)
	}
}
