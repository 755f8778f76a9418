package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath         string
	XLSXOutputPath    string
	CSVOutputPath     string
	SQLiteOutputPath  string
	SummaryOutputPath string
	LogLevel          string

	PostgresEnabled    bool
	PostgresHost       string
	PostgresPort       string
	PostgresUser       string
	PostgresPassword   string
	PostgresDB         string
	PostgresSSLMode    string
	PostgresMaxRetries int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		InputPath:         getEnv("INPUT_PATH", "supplier_car.json"),
		XLSXOutputPath:    getEnv("XLSX_OUTPUT_PATH", "./output/integration.xlsx"),
		CSVOutputPath:     getEnvAllowEmpty("CSV_OUTPUT_PATH", "./output/integrated.csv"),
		SQLiteOutputPath:  getEnvAllowEmpty("SQLITE_OUTPUT_PATH", "./output/integration.sqlite"),
		SummaryOutputPath: getEnvAllowEmpty("SUMMARY_OUTPUT_PATH", "./output/summary.yaml"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),

		PostgresEnabled:    getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:       getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:       getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:       getEnv("POSTGRES_USER", "integration"),
		PostgresPassword:   getEnv("POSTGRES_PASSWORD", "integration123"),
		PostgresDB:         getEnv("POSTGRES_DB", "vehicles_db"),
		PostgresSSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresMaxRetries: getEnvInt("POSTGRES_MAX_RETRIES", 5),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvAllowEmpty lets an explicitly empty variable disable an optional output.
func getEnvAllowEmpty(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(val)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
