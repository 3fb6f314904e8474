package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// MemoryStoreURL selects the in-process store instead of Postgres.
const MemoryStoreURL = "memory://"

type Config struct {
	Port         string
	BasePath     string
	StoreURL     string
	StoreKey     string
	StaffToken   string
	StoreTimeout time.Duration
	EnsureSchema bool
	DebugErrors  bool
	RedisAddr    string
	EventsBroker string
	KafkaBroker  string
	KafkaTopic   string
	RabbitURL    string
	OrderPageURL string
}

// Load reads the environment, after applying a .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	return Config{
		Port:         getEnv("PORT", "8080"),
		BasePath:     getEnv("API_BASE_PATH", ""),
		StoreURL:     os.Getenv("STORE_URL"),
		StoreKey:     os.Getenv("STORE_KEY"),
		StaffToken:   os.Getenv("STAFF_TOKEN"),
		StoreTimeout: getDuration("STORE_TIMEOUT", 10*time.Second),
		EnsureSchema: getBool("STORE_ENSURE_SCHEMA", false),
		DebugErrors:  getBool("DEBUG_ERRORS", false),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		EventsBroker: os.Getenv("EVENTS_BROKER"),
		KafkaBroker:  os.Getenv("KAFKA_BROKER"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "orders"),
		RabbitURL:    os.Getenv("RABBITMQ_URL"),
		OrderPageURL: os.Getenv("ORDER_PAGE_URL"),
	}
}

// MissingStoreCredentials lists the store variables that are unset. The
// in-memory store needs no key.
func (c Config) MissingStoreCredentials() []string {
	var missing []string
	if c.StoreURL == "" {
		missing = append(missing, "STORE_URL")
	}
	if c.StoreKey == "" && c.StoreURL != MemoryStoreURL {
		missing = append(missing, "STORE_KEY")
	}
	return missing
}

// StoreDSN returns STORE_URL with STORE_KEY set as the password.
func (c Config) StoreDSN() (string, error) {
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return "", fmt.Errorf("invalid STORE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid STORE_URL: unsupported scheme %q", u.Scheme)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.StoreKey)
	return u.String(), nil
}

func OpenPostgres(c Config) (*sql.DB, error) {
	dsn, err := c.StoreDSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Printf("Warning: failed to ping database: %v", err)
	}
	return db, nil
}

func NewRedis(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
