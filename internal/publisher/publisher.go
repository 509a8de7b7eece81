// Package publisher fans balance records out to the plant message bus.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"molten_balance/internal/models"
)

// Supported publisher kinds.
const (
	KindNone  = "none"
	KindMQTT  = "mqtt"
	KindKafka = "kafka"
)

// Config selects and configures the publisher.
type Config struct {
	Kind  string      `mapstructure:"kind"`
	MQTT  MQTTConfig  `mapstructure:"mqtt"`
	Kafka KafkaConfig `mapstructure:"kafka"`
}

// Publisher sends each balance record to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, rec models.BalanceRecord) error
	Close() error
}

// New builds the publisher named by cfg.Kind.
func New(cfg Config) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindNone:
		return Nop{}, nil
	case KindMQTT:
		return NewMQTT(cfg.MQTT)
	case KindKafka:
		return NewKafka(cfg.Kafka)
	default:
		return nil, fmt.Errorf("unknown publisher kind %q", cfg.Kind)
	}
}

// Encode renders a record as the JSON payload sent on the bus.
func Encode(rec models.BalanceRecord) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode balance record: %w", err)
	}
	return b, nil
}

// Nop discards records.
type Nop struct{}

func (Nop) Publish(context.Context, models.BalanceRecord) error { return nil }
func (Nop) Close() error                                        { return nil }
