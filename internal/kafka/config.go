package kafka

import (
	"fmt"
	"os"
	"strings"
)

// Config holds Kafka configuration
type Config struct {
	Brokers            string
	ListingEventsTopic string
	EnableIdempotence  bool
	Acks               string
}

// LoadConfig loads Kafka configuration from environment variables
func LoadConfig() (*Config, error) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}

	topic := os.Getenv("KAFKA_TOPIC_LISTING_EVENTS")
	if topic == "" {
		topic = "listing-events" // Default
	}

	return &Config{
		Brokers:            brokers,
		ListingEventsTopic: topic,
		EnableIdempotence:  true,  // Always enable for exactly-once
		Acks:               "all", // Wait for all replicas
	}, nil
}

// GetBrokersList returns brokers as a slice
func (c *Config) GetBrokersList() []string {
	brokers := strings.Split(c.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}
