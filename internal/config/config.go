package config

import (
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogFile     string
	LogLevel    string
	RatePerMin  int
}

func Load() Config {
	// .env is optional; real environment wins over it
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("OFFERS_DATABASE_URL")
	}
	if dsn == "" {
		dsn = "offers.db"
	} // sqlite file in working dir
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	rate := 120
	if v := os.Getenv("RATE_LIMIT_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			rate = n
		}
	}

	cfg := Config{
		Port:        port,
		DatabaseURL: dsn,
		LogFile:     os.Getenv("LOG_FILE"),
		LogLevel:    level,
		RatePerMin:  rate,
	}
	log.Info().
		Str("port", cfg.Port).
		Str("database", Redact(cfg.DatabaseURL)).
		Str("log_file", cfg.LogFile).
		Str("log_level", cfg.LogLevel).
		Int("rate_limit_per_min", cfg.RatePerMin).
		Msg("config loaded")
	return cfg
}

// Redact masks the password of a URL-style DSN so it can be logged.
func Redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
