package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed by reference into every
// component. No package reads the environment after Load returns.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Features FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
}

// StorageConfig configures the MinIO-backed image store.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is prepended to object names when building image URLs
	// returned to clients.
	PublicBaseURL string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	// DefaultCustomerID is used when an order submission carries no
	// customerId, matching the behavior the storefront relies on.
	DefaultCustomerID int64
}

type FeatureFlags struct {
	EnableCatalogCaching bool
	EnableOrderEvents    bool
}

// Load reads .env (when present) and the process environment into a Config.
func Load() *Config {
	// Missing .env is fine; the environment may be set by the runtime.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8000),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "snackforest"),
			Password:     getEnvString("DB_PASSWORD", "snackforest"),
			Name:         getEnvString("DB_NAME", "snackforest_shop"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			OrdersTopic: getEnvString("KAFKA_ORDERS_TOPIC", "shop.orders"),
		},
		Storage: StorageConfig{
			Endpoint:      getEnvString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnvString("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnvString("MINIO_SECRET_KEY", ""),
			Bucket:        getEnvString("MINIO_BUCKET", "product-images"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnvString("IMAGE_PUBLIC_BASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnvString("JWT_SECRET", "snackforest-dev-secret"),
			TokenTTL:          time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
			AdminUsername:     getEnvString("ADMIN_USERNAME", "admin"),
			AdminPassword:     getEnvString("ADMIN_PASSWORD", "000000"),
			DefaultCustomerID: int64(getEnvInt("DEFAULT_CUSTOMER_ID", 1)),
		},
		Features: FeatureFlags{
			EnableCatalogCaching: getEnvBool("ENABLE_CATALOG_CACHING", true),
			EnableOrderEvents:    getEnvBool("ENABLE_ORDER_EVENTS", true),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
