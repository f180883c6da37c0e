package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional

	if err := env.Parse(cfg); err != nil {
		return err // Return error if environment variable parsing fails
	}

	return nil
}

// Config holds the configuration for the matching engine binary.
type Config struct {
	DirectoryCapacity int           `env:"DIRECTORY_CAPACITY" envDefault:"1600"` // Fixed slot count of the ticker directory
	SweepInterval     time.Duration `env:"SWEEP_INTERVAL" envDefault:"100ms"`    // Period of the background matching sweep

	OrderIntake  KafkaConfig `envPrefix:"ORDER_INTAKE_"`  // Kafka topic orders are consumed from
	TradePublish KafkaConfig `envPrefix:"TRADE_PUBLISH_"` // Kafka topic trades are published to
}

// KafkaConfig holds the configuration for a Kafka consumer or producer.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID" envDefault:"default_group"`
	Brokers []string `env:"BROKER,required"`
}
