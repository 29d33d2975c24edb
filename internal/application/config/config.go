package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool   `env:"DEBUG" envDefault:"false"`
	Port  string `env:"PORT" envDefault:"8080"`

	// Host is the public base URL of this deployment, used to build
	// shareable party links and to verify the Origin of browser sockets.
	Host string `env:"HOST" envDefault:"http://localhost:8080"`

	MetricPort string `env:"METRIC_PORT" envDefault:"9090"`

	Redis    RedisConfig
	Kafka    KafkaConfig
	Postgres PostgresConfig
	TMDB     TMDBConfig
	Gemini   GeminiConfig
}

type RedisConfig struct {
	URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
}

type KafkaConfig struct {
	Brokers   []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	QueueSize int      `env:"KAFKA_QUEUE_SIZE" envDefault:"256"`
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`

	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Name     string `env:"POSTGRES_NAME" envDefault:"watchparty"`
	SSL      string `env:"POSTGRES_SSL" envDefault:"disable"`
}

func (p *PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSL,
	)
}

type TMDBConfig struct {
	APIKey      string `env:"TMDB_API_KEY,required"`
	BearerToken string `env:"TMDB_BEARER_TOKEN"`
	BaseURL     string `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
}

type GeminiConfig struct {
	APIKey  string `env:"GOOGLE_API_KEY,required"`
	Model   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	BaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
}

func New() (*Config, error) {
	// .env is optional; system env wins when both are present.
	_ = godotenv.Load()

	c, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &c, nil
}
