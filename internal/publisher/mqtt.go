package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"molten_balance/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	mqttQoS          = 1
	mqttTimeout      = 10 * time.Second
	mqttKeepAlive    = 30 * time.Second
	mqttQuiesceMilli = 250
	balanceTopic     = "balance"
)

// MQTTConfig configures the broker connection.
type MQTTConfig struct {
	Broker      string `mapstructure:"broker"` // e.g. tcp://10.10.22.10:1883
	ClientID    string `mapstructure:"client_id"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

// mqttClient is the subset of mqtt.Client the publisher needs.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes records with QoS 1 to <prefix>/balance.
type MQTT struct {
	client mqttClient
	topic  string
}

// NewMQTT connects to the broker and returns a publisher.
func NewMQTT(cfg MQTTConfig) (*MQTT, error) {
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, errors.New("mqtt broker is not configured")
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true)
	opts.CleanSession = true
	opts.SetKeepAlive(mqttKeepAlive)
	opts.SetPingTimeout(mqttTimeout)
	opts.SetWriteTimeout(mqttTimeout)
	opts.SetConnectTimeout(mqttTimeout)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %s: %w", cfg.Broker, tok.Error())
	}
	return newMQTT(client, cfg.TopicPrefix), nil
}

func newMQTT(client mqttClient, prefix string) *MQTT {
	return &MQTT{client: client, topic: topicFor(prefix)}
}

func topicFor(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return balanceTopic
	}
	return prefix + "/" + balanceTopic
}

// Publish sends one record and waits for the broker acknowledgement or ctx.
func (m *MQTT) Publish(ctx context.Context, rec models.BalanceRecord) error {
	payload, err := Encode(rec)
	if err != nil {
		return err
	}
	tok := m.client.Publish(m.topic, mqttQoS, false, payload)
	select {
	case <-tok.Done():
		if err := tok.Error(); err != nil {
			return fmt.Errorf("mqtt publish %s: %w", m.topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(mqttQuiesceMilli)
	return nil
}
