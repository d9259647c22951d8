// Package kafka publishes listing events.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Producer wraps Kafka producer with helper methods
type Producer struct {
	producer *kafka.Producer
	config   *Config
	logger   *slog.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(config *Config, logger *slog.Logger) (*Producer, error) {
	// Configure producer with idempotence enabled
	producerConfig := &kafka.ConfigMap{
		"bootstrap.servers":                     config.Brokers,
		"enable.idempotence":                    config.EnableIdempotence, // Prevents duplicates in Kafka
		"acks":                                  config.Acks,
		"max.in.flight.requests.per.connection": 5, // Required for idempotence
		"retries":                               2147483647,
	}

	p, err := kafka.NewProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	producer := &Producer{
		producer: p,
		config:   config,
		logger:   logger,
	}

	// Start delivery report handler in background
	go producer.handleDeliveryReports()

	logger.Info("Kafka producer initialized",
		"brokers", config.Brokers,
		"topic", config.ListingEventsTopic,
		"idempotence", config.EnableIdempotence)

	return producer, nil
}

// Publish sends payload as JSON to the listing events topic. Messages with the
// same key land on the same partition, so events of one listing stay ordered.
func (p *Producer) Publish(ctx context.Context, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := newMessage(p.config.ListingEventsTopic, key, payload)
	if err != nil {
		return err
	}

	// Produce message (non-blocking, uses delivery reports)
	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	p.logger.Debug("Listing event published to Kafka",
		"topic", p.config.ListingEventsTopic,
		"key", key,
		"size", len(msg.Value))

	return nil
}

func newMessage(topic, key string, payload any) (*kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(key),
		Value: data,
	}, nil
}

// handleDeliveryReports processes asynchronous delivery reports
func (p *Producer) handleDeliveryReports() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				p.logger.Error("Delivery failed",
					"topic", *ev.TopicPartition.Topic,
					"error", ev.TopicPartition.Error)
			} else {
				p.logger.Debug("Message delivered",
					"topic", *ev.TopicPartition.Topic,
					"partition", ev.TopicPartition.Partition,
					"offset", ev.TopicPartition.Offset)
			}
		case kafka.Error:
			p.logger.Warn("Kafka client error", "error", ev)
		}
	}
}

// Flush waits for all messages to be delivered
func (p *Producer) Flush(timeoutMs int) int {
	remaining := p.producer.Flush(timeoutMs)
	if remaining > 0 {
		p.logger.Warn("Failed to flush all messages",
			"remaining", remaining)
	}
	return remaining
}

// Close flushes pending events for up to 10 seconds and closes the producer
func (p *Producer) Close() {
	p.logger.Info("Closing Kafka producer...")

	remaining := p.Flush(10000)
	if remaining > 0 {
		p.logger.Error("Some messages were not delivered",
			"count", remaining)
	}

	p.producer.Close()
	p.logger.Info("Kafka producer closed")
}
