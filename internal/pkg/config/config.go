package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full runtime configuration, loaded from the environment.
// The service listens on two ports: HTTPSPort serves the application over
// TLS, HTTPPort exists only to redirect plaintext traffic to it.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT,     default=8080"`
	HTTPSPort   string `env:"HTTPS_PORT,    default=8443"`
	TLSCertFile string `env:"TLS_CERT_FILE, default=certs/server.crt"`
	TLSKeyFile  string `env:"TLS_KEY_FILE,  default=certs/server.key"`
	Env         string `env:"ENV,           default=development"`
	JWTSecret   string `env:"JWT_SECRET"`
	TokenTTL    string `env:"TOKEN_TTL,     default=24h"`
	BcryptCost  int    `env:"BCRYPT_COST,   default=12"`
	LogLevel    string `env:"LOG_LEVEL,     default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=securedapp"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
