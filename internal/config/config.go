package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	AppName           string
	AppVersion        string
	AppPort           string
	DbDriver          string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	SqlitePath        string
	AutoMigrate       bool
	TrustedProxies    []string
	RateLimitRPS      float64
	RateLimitBurst    int
	ShutdownTimeout   time.Duration
	TranslationFolder string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	driver := getEnv("DB_DRIVER", DriverMySQL)

	cfg := &Config{
		AppName:           getEnv("APP_NAME", "todo-api"),
		AppVersion:        getEnv("APP_VERSION", "dev"),
		AppPort:           getEnv("APP_PORT", "8080"),
		DbDriver:          driver,
		SqlitePath:        getEnv("SQLITE_PATH", "todo.db"),
		AutoMigrate:       getEnvBool("DB_AUTO_MIGRATE", false),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		TranslationFolder: os.Getenv("TRANSLATION_FOLDER"),
	}

	switch driver {
	case DriverPostgres:
		cfg.DbHost = getEnv("POSTGRES_HOST", "db")
		cfg.DbPort = getEnv("POSTGRES_PORT", "5432")
		cfg.DbUser = getEnv("POSTGRES_USER", "todo")
		cfg.DbPassword = getEnv("POSTGRES_PASSWORD", "todo")
		cfg.DbName = getEnv("POSTGRES_DB", "todo")
		cfg.DbParams = getEnv("POSTGRES_PARAMS", "sslmode=disable")
	default:
		cfg.DbHost = getEnv("MYSQL_HOST", "db")
		cfg.DbPort = getEnv("MYSQL_PORT", "3306")
		cfg.DbUser = getEnv("MYSQL_USER", "todo")
		cfg.DbPassword = getEnv("MYSQL_PASSWORD", "todo")
		cfg.DbName = getEnv("MYSQL_DATABASE", "todo")
		cfg.DbParams = getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
