package config

import (
	"time"

	pkgconfig "github.com/PencariData/search-service-api/pkg/config"
)

type Config struct {
	Server        ServerConfig
	Elasticsearch ElasticsearchConfig
	Redis         RedisConfig
	Cache         CacheConfig
	Database      DatabaseConfig
	Queue         QueueConfig
	Limits        LimitsConfig
	Log           LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type ElasticsearchConfig struct {
	Addresses          []string `mapstructure:"addresses"`
	IndexAccommodation string   `mapstructure:"index_accommodation"`
	IndexDestination   string   `mapstructure:"index_destination"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig selects the result-cache backend. "memory" keeps results in a
// process-local TTL map, "redis" shares them through Redis.
type CacheConfig struct {
	Backend       string        `mapstructure:"backend"`
	Prefix        string        `mapstructure:"prefix"`
	ResultTTL     time.Duration `mapstructure:"result_ttl"`
	SuggestionTTL time.Duration `mapstructure:"suggestion_ttl"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	FilePath string `mapstructure:"filepath"` // sqlite only
}

type QueueConfig struct {
	SearchLogCapacity     int `mapstructure:"search_log_capacity"`
	SuggestionLogCapacity int `mapstructure:"suggestion_log_capacity"`
	ClickLogCapacity      int `mapstructure:"click_log_capacity"`
}

type LimitsConfig struct {
	SearchMaxLimit                  int `mapstructure:"search_max_limit"`
	SuggestionMaxLimit              int `mapstructure:"suggestion_max_limit"`
	AccommodationSuggestionMaxLimit int `mapstructure:"accommodation_suggestion_max_limit"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("elasticsearch.index_accommodation", "accommodations")
	v.SetDefault("elasticsearch.index_destination", "destinations")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.prefix", "search")
	v.SetDefault("cache.result_ttl", "5m")
	v.SetDefault("cache.suggestion_ttl", "10m")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "search")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "search_logs")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.filepath", "search_logs.db")
	v.SetDefault("queue.search_log_capacity", 1024)
	v.SetDefault("queue.suggestion_log_capacity", 1024)
	v.SetDefault("queue.click_log_capacity", 1024)
	v.SetDefault("limits.search_max_limit", 30)
	v.SetDefault("limits.suggestion_max_limit", 3)
	v.SetDefault("limits.accommodation_suggestion_max_limit", 4)
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("elasticsearch.addresses", "ES_ADDRESSES")
	v.BindEnv("elasticsearch.index_accommodation", "ES_INDEX_ACCOMMODATION")
	v.BindEnv("elasticsearch.index_destination", "ES_INDEX_DESTINATION")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
