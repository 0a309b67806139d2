// Package config loads the backend configuration from the environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DB struct {
		// Path to the sqlite database file. Ignored when Host is set.
		Path string

		// Postgres connection settings. Setting Host switches the
		// backend from sqlite to postgres.
		Host     string
		User     string
		Password string
		Name     string
	} `mapstructure:"db"`

	API struct {
		// URL is the base URL the backend is reachable at, used to
		// construct resource links in responses.
		URL string
	} `mapstructure:"api"`

	CORS struct {
		// AllowOrigins is a comma separated list of allowed origins.
		AllowOrigins string `mapstructure:"allow_origins"`
	} `mapstructure:"cors"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Log struct {
		// Format is "json" or "human".
		Format string
	} `mapstructure:"log"`

	Gin struct {
		Mode string
	} `mapstructure:"gin"`

	EnablePprof bool `mapstructure:"enable_pprof"`
}

// Load reads the configuration from SITEWISE_* environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.path", "data/sitewise.db")
	v.SetDefault("db.host", "")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("api.url", "")
	v.SetDefault("cors.allow_origins", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("log.format", "json")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("enable_pprof", false)

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}
