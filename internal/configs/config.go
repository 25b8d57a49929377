package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type CoinGeckoConfig struct {
	URL         string // пусто - публичный API CoinGecko
	APIKey      string
	Parallelism int
	RandomDelay time.Duration
	Timeout     time.Duration
}

type ConsultationAPIConfig struct {
	URL     string
	Timeout time.Duration
}

type MarketConfig struct {
	PollInterval time.Duration
	AssetsLimit  int
	// MaxAge - сколько данные экрана считаются свежими.
	MaxAge time.Duration
}

// DBconfig хранит конфигурацию для БД. Пустой URL отключает историю снимков.
type DBconfig struct {
	URL string
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName         string
	Server          ServerConfig
	CoinGecko       CoinGeckoConfig
	ConsultationAPI ConsultationAPIConfig
	Market          MarketConfig
	Database        DBconfig
	RabbitMQ        RabbitMQConfig
	FluentBit       FluentBitConfig
	StdoutLogger    StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env и переменных окружения.
// Отсутствие .env по умолчанию допустимо, явно указанный файл обязан существовать.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("could not load .env file (path: %s): %w", envPath[0], err)
		}
	} else if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file: %w", err)
		}
		log.Println("Info: .env file not found, using environment variables only")
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "dashboard-service")

	cfg.Server.Port = getEnvAsString("PORT", "8080")
	cfg.Server.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg.CoinGecko.URL = getEnvAsString("COINGECKO_URL", "")
	cfg.CoinGecko.APIKey = getEnvAsString("COINGECKO_API_KEY", "")
	cfg.CoinGecko.Parallelism = getEnvAsInt("COINGECKO_PARALLELISM", 1)
	cfg.CoinGecko.RandomDelay = getEnvAsDuration("COINGECKO_RANDOM_DELAY", time.Second)
	cfg.CoinGecko.Timeout = getEnvAsDuration("COINGECKO_TIMEOUT", 15*time.Second)

	cfg.ConsultationAPI.URL = getEnvAsString("CONSULTATION_API_URL", "http://localhost:5000")
	cfg.ConsultationAPI.Timeout = getEnvAsDuration("CONSULTATION_API_TIMEOUT", 30*time.Second)

	cfg.Market.PollInterval = getEnvAsDuration("MARKET_POLL_INTERVAL", 60*time.Second)
	cfg.Market.AssetsLimit = getEnvAsInt("MARKET_ASSETS_LIMIT", 100)
	cfg.Market.MaxAge = getEnvAsDuration("MARKET_MAX_AGE", cfg.Market.PollInterval)
	if cfg.Market.PollInterval <= 0 {
		return nil, fmt.Errorf("MARKET_POLL_INTERVAL must be positive, got %s", cfg.Market.PollInterval)
	}

	cfg.Database.URL = getEnvAsString("DATABASE_URL", "")

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt логирует и возвращает значение по умолчанию, если переменная не парсится
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает формат time.ParseDuration ("30s", "1m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
