package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"offers/internal/config"
	"offers/internal/http/handlers"
	applog "offers/internal/log"
	"offers/internal/repos"
)

func main() {
	cfg := config.Load()
	applog.SetLevel(cfg.LogLevel)

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}
	lg := applog.Logger()

	db, err := repos.OpenDB(cfg.DatabaseURL)
	if err != nil {
		lg.Fatal().Err(err).Str("database", config.Redact(cfg.DatabaseURL)).Msg("open database")
	}
	defer db.Close()

	app := handlers.NewApp(cfg, handlers.NewDeps(db))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		lg.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	lg.Info().Str("port", cfg.Port).Str("driver", db.DriverName()).Msg("offers service listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		lg.Error().Err(err).Msg("server stopped")
	}
}
