package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"drawdash/internal/config"
	"drawdash/internal/game"
	"drawdash/internal/relay"
	"drawdash/internal/store"
	"drawdash/internal/ws"
)

const version = "v1.0.0-dev"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`drawdash - Real-time draw & guess game server

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  REDIS_ADDR          Redis host:port for cross-instance relay and user
                      stats (optional; in-memory without it)
  REDIS_USERNAME      Redis username (optional)
  REDIS_PASSWORD      Redis password (optional)
  MAX_PLAYERS         Player cap per room (default: 8)
  MIN_PLAYERS         Minimum players to start a game (default: 2)
  DEFAULT_ROUNDS      Rounds per game (default: 3)
  DEFAULT_TIME_LIMIT  Seconds per round (default: 60)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("drawdash %s\n", version)
		return
	}

	port := *portFlag
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	cfg := config.FromEnv()

	// Persistence + relay: redis when configured, in-memory otherwise
	var (
		users store.UserStore
		rly   relay.Relay
	)
	if cfg.RedisAddr != "" {
		pool := newRedisPool(cfg)
		users = store.NewRedis(pool)
		redisRelay := relay.NewRedis(pool)
		defer redisRelay.Close()
		rly = redisRelay
		zerologlog.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
	} else {
		users = store.NewMemory()
		zerologlog.Info().Msg("no REDIS_ADDR, running single-instance in-memory")
	}

	// Gateway + room registry
	srv := ws.New(rly)
	reg := game.NewRegistry(game.Options{
		Emitter:    srv,
		Supplier:   game.NewWordSupplier(),
		Recorder:   store.NewRecorder(users),
		Defaults:   game.Settings{TotalRounds: cfg.DefaultRounds, TimePerRound: cfg.DefaultTimeLimit},
		MaxPlayers: cfg.MaxPlayers,
		MinPlayers: cfg.MinPlayers,
	})
	srv.UseRegistry(reg)
	io := srv.Mount(r)
	defer io.Close()

	// Minimal JSON API next to the socket transport
	r.POST("/api/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"roomId": reg.NewCode()})
	})
	r.GET("/api/rooms/:id", func(c *gin.Context) {
		room, ok := reg.Get(strings.ToUpper(c.Param("id")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room_not_found"})
			return
		}
		c.JSON(http.StatusOK, room.Snapshot())
	})
	r.GET("/api/users/:id", func(c *gin.Context) {
		u, err := users.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
			return
		}
		c.JSON(http.StatusOK, u)
	})
	r.PUT("/api/users/:id", func(c *gin.Context) {
		var u store.User
		if err := c.BindJSON(&u); err != nil || u.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user"})
			return
		}
		u.ID = c.Param("id")
		if err := users.Put(c.Request.Context(), u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store_failed"})
			return
		}
		c.JSON(http.StatusOK, u)
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	zerologlog.Info().Str("port", port).Msg("listening")
	if err := r.Run(":" + port); err != nil {
		zerologlog.Fatal().Err(err).Msg("server exited")
	}
}

func newRedisPool(cfg config.Config) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			opts := []redis.DialOption{}
			if cfg.RedisUsername != "" {
				opts = append(opts, redis.DialUsername(cfg.RedisUsername))
			}
			if cfg.RedisPassword != "" {
				opts = append(opts, redis.DialPassword(cfg.RedisPassword))
			}
			return redis.Dial("tcp", cfg.RedisAddr, opts...)
		},
	}
}
