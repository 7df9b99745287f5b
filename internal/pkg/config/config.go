package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`

	DB    DBConfig
	Redis RedisConfig
}

type DBConfig struct {
	// Driver selects the relational backend: mysql or postgres.
	Driver       string `env:"DB_DRIVER,        default=mysql"`
	DSN          string `env:"DB_DSN,           default=attendance:attendance@tcp(localhost:3306)/attendance?parseTime=true"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=25"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Development reports whether the service runs with developer ergonomics
// (pretty logs, verbose errors).
func (c *Config) Development() bool {
	return c.Env == "development"
}
