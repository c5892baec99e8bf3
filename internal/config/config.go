package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port        string
	DatabaseURL string

	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	AutoMigrate     bool
	GinMode         string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration

	// AuthJWTSecret enables bearer auth on write endpoints when non-empty.
	AuthJWTSecret  string
	AuthWriteRoles []string
}

var ErrMissingDatabaseURL = errors.New("missing required env: DATABASE_URL")

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("db_min_conns", 1)
	v.SetDefault("db_max_conn_idle_time", 5*time.Minute)
	v.SetDefault("auto_migrate", true)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_write_roles", "hr,admin")
}

// New loads .env (if present) and returns a viper instance wired to the
// environment with defaults set.
// Callers may bind cobra flags to it before calling FromViper.
func New() *viper.Viper {
	_ = godotenv.Load() // load .env if present
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	// AutomaticEnv only consults keys viper already knows about.
	_ = v.BindEnv("database_url")
	return v
}

func FromViper(v *viper.Viper) (AppConfig, error) {
	dbURL := strings.TrimSpace(v.GetString("database_url"))
	if dbURL == "" {
		return AppConfig{}, ErrMissingDatabaseURL
	}
	port := strings.TrimSpace(v.GetString("port"))
	if port == "" {
		port = "8080"
	}
	return AppConfig{
		Port:              port,
		DatabaseURL:       dbURL,
		DBMaxConns:        v.GetInt32("db_max_conns"),
		DBMinConns:        v.GetInt32("db_min_conns"),
		DBMaxConnIdleTime: v.GetDuration("db_max_conn_idle_time"),
		AutoMigrate:       v.GetBool("auto_migrate"),
		GinMode:           v.GetString("gin_mode"),
		MetricsEnabled:    v.GetBool("metrics_enabled"),
		ShutdownTimeout:   v.GetDuration("shutdown_timeout"),
		AuthJWTSecret:     v.GetString("auth_jwt_secret"),
		AuthWriteRoles:    splitList(v.GetString("auth_write_roles")),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(strings.ToLower(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
