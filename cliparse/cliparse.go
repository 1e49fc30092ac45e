package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Supported database types
const (
	DatabasePostgres = "postgres"
	DatabasePGX      = "pgx"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	JWTSecret    string
	RedisURL     string
	NATSURL      string
	ClientHosts  []string
	LogLevel     slog.Level
}

var hostSeparators = regexp.MustCompile(`[,; ]+`)

// ParseFlags validates flags and fills the gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var clientHosts, logLevel string

	fs := flag.NewFlagSet("rankfeed", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres, pgx or sqlite)")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for the post cache (optional)")
	fs.StringVar(&cfg.NATSURL, "nats", "", "NATS URL for change events (optional)")
	fs.StringVar(&clientHosts, "clients", "", "Allowed CORS origins, separated by comma, semicolon or space")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Bearer token secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabasePostgres, DatabasePGX, DatabaseSQLite:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	if cfg.NATSURL == "" {
		cfg.NATSURL = os.Getenv("NATS_URL")
	}

	if clientHosts == "" {
		clientHosts = os.Getenv("CLIENT_HOSTS")
	}
	cfg.ClientHosts = splitHosts(clientHosts)

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	return cfg, nil
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range hostSeparators.Split(strings.TrimSpace(s), -1) {
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
