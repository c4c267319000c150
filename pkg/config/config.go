package config

import (
	"strings"
	"time"

	"github.com/anonto42/public-space/backend/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "supersecretjwtkey"

// Store drivers
const (
	StoreMemory   = "memory"
	StoreExternal = "external"
)

type Config struct {
	Port        string
	Env         string
	StoreDriver string

	PostgresConnStr string
	MongoURI        string
	MongoDatabase   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	QuotaLockTTL  time.Duration

	KafkaBrokers      []string
	KafkaTopic        string
	KafkaWriteTimeout time.Duration

	FirebaseCredentialsPath string
	JWTSecret               string
	RequestTimeout          time.Duration
}

// Load reads configuration from an optional .env file, an optional
// config.yaml and the process environment, in increasing priority.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.New("config").Info("no .env file found, using process environment")
	}

	v := viper.New()
	v.SetDefault("PORT", "10000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("MONGO_DATABASE", "publicSpace")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("QUOTA_LOCK_TTL", "5s")
	v.SetDefault("KAFKA_TOPIC", "post-events")
	v.SetDefault("KAFKA_WRITE_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("REQUEST_TIMEOUT", "10s")

	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // a config file is optional

	return &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		StoreDriver:             strings.ToLower(v.GetString("STORE_DRIVER")),
		PostgresConnStr:         v.GetString("POSTGRES_CONN_STR"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		RedisPassword:           v.GetString("REDIS_PASSWORD"),
		RedisDB:                 v.GetInt("REDIS_DB"),
		QuotaLockTTL:            parseDuration(v.GetString("QUOTA_LOCK_TTL"), 5*time.Second),
		KafkaBrokers:            splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:              v.GetString("KAFKA_TOPIC"),
		KafkaWriteTimeout:       parseDuration(v.GetString("KAFKA_WRITE_TIMEOUT"), 10*time.Second),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		RequestTimeout:          parseDuration(v.GetString("REQUEST_TIMEOUT"), 10*time.Second),
	}
}

// InsecureJWTSecret reports whether tokens would be signed with the
// built-in development secret or no secret at all.
func (c *Config) InsecureJWTSecret() bool {
	return c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
