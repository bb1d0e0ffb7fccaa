package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server        ServerConfig
	TicketService TicketServiceConfig
	Kafka         KafkaConfig
	Redis         RedisConfig
	Store         StoreConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// TicketServiceConfig points the reservation service at the ticket service.
type TicketServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	Enabled  bool
	MockMode bool
	Topics   TopicConfig
}

type TopicConfig struct {
	ReservationCreated   string
	ReservationFailed    string
	ReservationCancelled string
	ReservationPaid      string
}

// RedisConfig drives the availability-hint cache. Disabled by default; the
// pre-check it serves is non-authoritative either way.
type RedisConfig struct {
	Addr    string
	Enabled bool
	HintTTL time.Duration
}

type StoreConfig struct {
	// Backend selects the reservation store: "memory" or "sqlite".
	Backend string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8082"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		TicketService: TicketServiceConfig{
			BaseURL: getEnv("TICKET_SERVICE_URL", "http://localhost:8081"),
			Timeout: time.Duration(getEnvInt("TICKET_SERVICE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
			Topics: TopicConfig{
				ReservationCreated:   getEnv("KAFKA_TOPIC_RESERVATION_CREATED", "reservation.created"),
				ReservationFailed:    getEnv("KAFKA_TOPIC_RESERVATION_FAILED", "reservation.failed"),
				ReservationCancelled: getEnv("KAFKA_TOPIC_RESERVATION_CANCELLED", "reservation.cancelled"),
				ReservationPaid:      getEnv("KAFKA_TOPIC_RESERVATION_PAID", "reservation.paid"),
			},
		},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			Enabled: getEnvBool("REDIS_ENABLED", false),
			HintTTL: time.Duration(getEnvInt("REDIS_HINT_TTL_SECONDS", 3)) * time.Second,
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "memory"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
