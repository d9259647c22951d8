package kafka

import (
	"encoding/json"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_TOPIC_LISTING_EVENTS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "listing-events", cfg.ListingEventsTopic)
	assert.True(t, cfg.EnableIdempotence)
	assert.Equal(t, "all", cfg.Acks)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.GetBrokersList())

	t.Setenv("KAFKA_TOPIC_LISTING_EVENTS", "prices")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "prices", cfg.ListingEventsTopic)
}

func TestLoadConfig_RequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewMessage(t *testing.T) {
	msg, err := newMessage("listing-events", "Market2_lokacija1", map[string]any{
		"type":         "listing.updated",
		"productCount": 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "listing-events", *msg.TopicPartition.Topic)
	assert.Equal(t, kafka.PartitionAny, msg.TopicPartition.Partition)
	assert.Equal(t, []byte("Market2_lokacija1"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "listing.updated", decoded["type"])
	assert.Equal(t, float64(3), decoded["productCount"])
}

func TestNewMessage_Unencodable(t *testing.T) {
	_, err := newMessage("t", "k", make(chan int))
	assert.Error(t, err)
}
