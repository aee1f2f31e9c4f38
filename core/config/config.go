package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from the environment
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Gemini      GeminiConfig
	Matchmaking MatchmakingConfig
}

type ServerConfig struct {
	Port     int
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  int // hours
	RefreshTokenTTL int // hours
}

// GeminiConfig configures the optional model-backed scorer. The scorer is
// enabled only when APIKey is non-empty.
type GeminiConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

type MatchmakingConfig struct {
	DailyQuota int
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and the process environment into the
// package singleton.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "sponsorsync")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", 24)
	v.SetDefault("JWT_REFRESH_TOKEN_TTL", 168)
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash-latest")
	v.SetDefault("GEMINI_TIMEOUT_SECONDS", 20)
	v.SetDefault("MATCHMAKING_DAILY_QUOTA", 100)

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetInt("SERVER_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("JWT_SECRET"),
			AccessTokenTTL:  v.GetInt("JWT_ACCESS_TOKEN_TTL"),
			RefreshTokenTTL: v.GetInt("JWT_REFRESH_TOKEN_TTL"),
		},
		Gemini: GeminiConfig{
			APIKey:         v.GetString("GEMINI_API_KEY"),
			Model:          v.GetString("GEMINI_MODEL"),
			TimeoutSeconds: v.GetInt("GEMINI_TIMEOUT_SECONDS"),
		},
		Matchmaking: MatchmakingConfig{
			DailyQuota: v.GetInt("MATCHMAKING_DAILY_QUOTA"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded config. Panics if Load has not been called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

// GetSafe returns the loaded config and whether it has been initialized
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
