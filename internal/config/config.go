package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"adminConsole/internal/shared/normalization"
	"adminConsole/internal/shared/validation"
)

type Config struct {
	Server    ServerConfig
	REST      RESTConfig
	Security  SecurityConfig
	Kafka     KafkaConfig
	Logging   LoggingConfig
	Websocket WebsocketConfig
	Console   ConsoleConfig
}

type ServerConfig struct {
	Port string `json:"PORT" validate:"required,numeric"`
}

type RESTConfig struct {
	BaseURL string        `json:"REST_BASE_URL" validate:"required,url"`
	Timeout time.Duration `json:"REST_TIMEOUT" validate:"gt=0"`
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
	// ServiceToken authenticates refreshes triggered by backend events.
	ServiceToken string
	AdminRoles   []string
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics maps a canonical entity name to the kafka topics carrying its events.
	Topics         map[string][]string
	AllowedActions []string
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

type WebsocketConfig struct {
	SendBuffer int `json:"WS_SEND_BUFFER" validate:"min=1,max=1024"`
}

type ConsoleConfig struct {
	PageSize    int `json:"CONSOLE_PAGE_SIZE" validate:"min=1,max=100"`
	SeedSamples bool
}

func Load() (*Config, error) {
	timeout, err := getDuration("REST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	pageSize, err := getInt("CONSOLE_PAGE_SIZE", 10)
	if err != nil {
		return nil, err
	}
	sendBuffer, err := getInt("WS_SEND_BUFFER", 32)
	if err != nil {
		return nil, err
	}

	brokers := splitList(getEnv("KAFKA_BROKERS", ""))
	if len(brokers) == 0 {
		brokers = splitList(getEnv("KAFKA_BROKER", ""))
	}

	cfg := &Config{
		Server: ServerConfig{Port: getEnv("PORT", "8080")},
		REST: RESTConfig{
			BaseURL: strings.TrimRight(getEnv("REST_BASE_URL", "http://localhost:3000"), "/"),
			Timeout: timeout,
		},
		Security: SecurityConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTPublicKey: strings.ReplaceAll(getEnv("JWT_PUBLIC_KEY", ""), `\n`, "\n"),
			ServiceToken: getEnv("SERVICE_TOKEN", ""),
			AdminRoles:   splitList(getEnv("ADMIN_ROLES", "admin,super_admin")),
		},
		Kafka: KafkaConfig{
			Brokers:        brokers,
			GroupID:        getEnv("KAFKA_GROUP_ID", "admin-console"),
			Topics:         loadTopics(),
			AllowedActions: splitList(getEnv("KAFKA_ALLOWED_ACTIONS", "created,updated,deleted,restored,status_changed")),
		},
		Logging: LoggingConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
			Directory: getEnv("LOG_DIRECTORY", "./logs"),
		},
		Websocket: WebsocketConfig{SendBuffer: sendBuffer},
		Console: ConsoleConfig{
			PageSize:    pageSize,
			SeedSamples: getBool("CONSOLE_SEED_SAMPLES", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, section := range []any{c.Server, c.REST, c.Websocket, c.Console} {
		failures, err := validation.Struct(section)
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			return fmt.Errorf("config: %s %s", failures[0].Field, failures[0].Message())
		}
	}
	return nil
}

// KafkaTopics returns every configured kafka topic once.
func (c *Config) KafkaTopics() []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, entity := range normalization.GetAllValidEntities() {
		for _, topic := range c.Kafka.Topics[entity] {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
		}
	}
	return topics
}

// loadTopics reads KAFKA_TOPICS_<ENTITY> for every console entity.
func loadTopics() map[string][]string {
	topics := make(map[string][]string)
	for _, entity := range normalization.GetAllValidEntities() {
		key := "KAFKA_TOPICS_" + strings.ToUpper(entity)
		if list := splitList(getEnv(key, "")); len(list) > 0 {
			topics[entity] = list
		}
	}
	return topics
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getDuration accepts Go durations ("15s") and plain seconds ("15").
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return value, nil
}

func getBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
