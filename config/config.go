package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Orders OrdersConfig
	NATS   NATSConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type AuthConfig struct {
	JWTSecret       string
	SuperAdminEmail string
}

type OrdersConfig struct {
	// When true, Deliver refuses orders that have not been paid yet.
	RequirePaidDelivery bool
}

type NATSConfig struct {
	URL string
}

type RedisConfig struct {
	Addr string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		DB: DBConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "storefront"),
		},
		Auth: AuthConfig{
			JWTSecret:       os.Getenv("JWT_SECRET"),
			SuperAdminEmail: getEnv("SUPER_ADMIN_EMAIL", "john.doe@example.com"),
		},
		Orders: OrdersConfig{
			RequirePaidDelivery: getEnv("ORDERS_REQUIRE_PAID_DELIVERY", "false") == "true",
		},
		NATS: NATSConfig{
			URL: os.Getenv("NATS_URL"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DB.URL == "" && c.DB.Name == "" {
		return fmt.Errorf("DATABASE_URL or DB_NAME is required")
	}
	return nil
}

// DSN builds the postgres connection string when DATABASE_URL is not set.
func (c *Config) DSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
