package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`
	// Отдельный DSN реплики; пусто — все чтения идут в primary.
	DBReplicaDSN string `mapstructure:"DB_REPLICA_DSN"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// TTL кеша в секундах.
	CacheListTTL   int `mapstructure:"CACHE_LIST_TTL"`
	CacheEntityTTL int `mapstructure:"CACHE_ENTITY_TTL"`

	// Лимитер: запросов в секунду и burst на клиента (по IP).
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))

	// пароли и DSN реплики (содержит пароль) маскируем
	if c.DBPassword != "" {
		sb.WriteString("  DBPassword: ********\n")
	} else {
		sb.WriteString("  DBPassword: (empty)\n")
	}
	if c.DBReplicaDSN != "" {
		sb.WriteString("  DBReplicaDSN: ********\n")
	} else {
		sb.WriteString("  DBReplicaDSN: (empty)\n")
	}

	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	if c.RedisPassword != "" {
		sb.WriteString("  RedisPassword: ********\n")
	} else {
		sb.WriteString("  RedisPassword: (empty)\n")
	}

	sb.WriteString(fmt.Sprintf("  CacheListTTL: %d\n", c.CacheListTTL))
	sb.WriteString(fmt.Sprintf("  CacheEntityTTL: %d\n", c.CacheEntityTTL))
	sb.WriteString(fmt.Sprintf("  RateLimitRPS: %g\n", c.RateLimitRPS))
	sb.WriteString(fmt.Sprintf("  RateLimitBurst: %d\n", c.RateLimitBurst))

	return sb.String()
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Загружаем .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"DB_REPLICA_DSN",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"CACHE_LIST_TTL", "CACHE_ENTITY_TTL",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Дефолты, чтобы сервис поднимался с голым окружением
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_SCHEME", "catalog")
	v.SetDefault("CACHE_LIST_TTL", 60)
	v.SetDefault("CACHE_ENTITY_TTL", 300)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
