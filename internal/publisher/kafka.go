package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"molten_balance/internal/models"

	"github.com/segmentio/kafka-go"
)

const kafkaBatchTimeout = 50 * time.Millisecond

// KafkaConfig configures the topic writer.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka writes records keyed by their timestamp.
type Kafka struct {
	w kafkaWriter
}

// NewKafka builds a writer; brokers are dialed lazily on first write.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, errors.New("kafka brokers and topic are required")
	}
	return &Kafka{w: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: kafkaBatchTimeout,
	}}, nil
}

// Publish writes one record.
func (k *Kafka) Publish(ctx context.Context, rec models.BalanceRecord) error {
	payload, err := Encode(rec)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(rec.Timestamp.UTC().Format(time.RFC3339Nano)),
		Value: payload,
		Time:  rec.Timestamp,
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (k *Kafka) Close() error {
	return k.w.Close()
}
