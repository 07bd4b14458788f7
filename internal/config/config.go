package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for accumulator-ledger-service
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Store     StoreConfig
	Sports    SportsConfig
	Ledger    LedgerConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisConfig holds Redis configuration (ledger store and score cache)
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	ScoreTTL time.Duration `mapstructure:"score_ttl"` // final scores only matter until settlement
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string // topic carrying finished match results
	GroupID string
}

// StoreConfig selects the ledger state backend
type StoreConfig struct {
	Backend    string // "redis" or "sqlite"
	SQLitePath string `mapstructure:"sqlite_path"`
	LedgerID   string `mapstructure:"ledger_id"`
}

// SportsConfig holds the upstream recommendation/result API configuration
type SportsConfig struct {
	PicksBaseURL   string `mapstructure:"picks_base_url"`
	ResultsBaseURL string `mapstructure:"results_base_url"`
	Timeout        time.Duration
	RequestsPerSec int           `mapstructure:"requests_per_sec"`
	LookupTimeout  time.Duration `mapstructure:"lookup_timeout"` // per-leg settlement lookup bound
}

// LedgerConfig holds ticket generation parameters
type LedgerConfig struct {
	MinCandidates int `mapstructure:"min_candidates"`
}

// SchedulerConfig holds the daily trigger configuration
type SchedulerConfig struct {
	Enabled       bool
	ResolveHour   int           `mapstructure:"resolve_hour"`  // UTC hour to settle yesterday's tickets
	GenerateHour  int           `mapstructure:"generate_hour"` // UTC hour to generate today's tickets
	CheckInterval time.Duration `mapstructure:"check_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.score_ttl", 72*time.Hour)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "match_results")
	v.SetDefault("kafka.group_id", "accumulator-ledger")

	v.SetDefault("store.backend", "redis")
	v.SetDefault("store.sqlite_path", "data/ledger.db")
	v.SetDefault("store.ledger_id", "daily")

	v.SetDefault("sports.picks_base_url", "http://localhost:8090")
	v.SetDefault("sports.results_base_url", "https://www.thesportsdb.com")
	v.SetDefault("sports.timeout", 10*time.Second)
	v.SetDefault("sports.requests_per_sec", 5)
	v.SetDefault("sports.lookup_timeout", 5*time.Second)

	v.SetDefault("ledger.min_candidates", 3)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.resolve_hour", 6)
	v.SetDefault("scheduler.generate_hour", 8)
	v.SetDefault("scheduler.check_interval", time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("ACCA_LEDGER")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Store.Backend != "redis" && config.Store.Backend != "sqlite" {
		return nil, fmt.Errorf("invalid store backend %q: must be redis or sqlite", config.Store.Backend)
	}

	return &config, nil
}
