package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"

	"github.com/sitewise/backend/internal/config"
	"github.com/sitewise/backend/internal/models"
	"github.com/sitewise/backend/internal/router"
)

func main() {
	// A .env file is optional, variables from the environment win
	_ = gotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration could not be loaded")
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.Gin.Mode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.Log.Format == "" && gin.IsDebugging()) || cfg.Log.Format == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Postgres when a host is configured, sqlite otherwise
	if cfg.DB.Host != "" {
		err = models.ConnectPostgres(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	} else {
		if mkdirErr := os.MkdirAll(filepath.Dir(cfg.DB.Path), os.ModePerm); mkdirErr != nil {
			log.Fatal().Err(mkdirErr).Msg("data directory could not be created")
		}
		err = models.Connect(cfg.DB.Path)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	apiURL, err := url.Parse(cfg.API.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("API_URL must be a valid URL")
	}

	r, err := router.Config(apiURL, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("router could not be initialized")
	}
	router.AttachRoutes(cfg, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
