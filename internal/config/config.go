package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Redis is optional; without an address the server runs
	// single-instance with in-memory storage and no relay.
	RedisAddr     string
	RedisUsername string
	RedisPassword string

	MaxPlayers       int
	MinPlayers       int
	DefaultRounds    int
	DefaultTimeLimit int // seconds
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.RedisAddr = os.Getenv("REDIS_ADDR")
	c.RedisUsername = os.Getenv("REDIS_USERNAME")
	c.RedisPassword = os.Getenv("REDIS_PASSWORD")
	c.MaxPlayers = getint("MAX_PLAYERS", 8)
	c.MinPlayers = getint("MIN_PLAYERS", 2)
	c.DefaultRounds = getint("DEFAULT_ROUNDS", 3)
	c.DefaultTimeLimit = getint("DEFAULT_TIME_LIMIT", 60)
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
