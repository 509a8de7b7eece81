package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"molten_balance/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newFakeToken(err error) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type fakeMQTTClient struct {
	topic        string
	qos          byte
	payload      []byte
	err          error
	disconnected bool
}

func (c *fakeMQTTClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.topic = topic
	c.qos = qos
	c.payload, _ = payload.([]byte)
	return newFakeToken(c.err)
}

func (c *fakeMQTTClient) Disconnect(uint) { c.disconnected = true }

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeKafkaWriter) Close() error {
	w.closed = true
	return nil
}

func sampleRecord() models.BalanceRecord {
	return models.BalanceRecord{
		ID:           "r-1",
		Timestamp:    time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
		ResidualTon:  120.5,
		ResidualRate: 6.2,
		Status:       models.StatusCaution,
	}
}

func TestNew_Kinds(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)

	p, err = New(Config{Kind: "NONE"})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)

	_, err = New(Config{Kind: "amqp"})
	assert.Error(t, err)

	p, err = New(Config{Kind: KindKafka, Kafka: KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "furnace.balance"}})
	require.NoError(t, err)
	assert.IsType(t, &Kafka{}, p)
	assert.NoError(t, p.Close())
}

func TestNewKafka_RequiresBrokersAndTopic(t *testing.T) {
	_, err := NewKafka(KafkaConfig{Topic: "x"})
	assert.Error(t, err)
	_, err = NewKafka(KafkaConfig{Brokers: []string{"b:9092"}})
	assert.Error(t, err)
}

func TestNewMQTT_RequiresBroker(t *testing.T) {
	_, err := NewMQTT(MQTTConfig{})
	assert.Error(t, err)
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, "furnace/balance", topicFor("furnace"))
	assert.Equal(t, "plant/bf2/balance", topicFor("/plant/bf2/"))
	assert.Equal(t, "balance", topicFor(""))
}

func TestMQTT_Publish(t *testing.T) {
	client := &fakeMQTTClient{}
	p := newMQTT(client, "furnace")

	rec := sampleRecord()
	require.NoError(t, p.Publish(context.Background(), rec))
	assert.Equal(t, "furnace/balance", client.topic)
	assert.Equal(t, byte(1), client.qos)

	var got models.BalanceRecord
	require.NoError(t, json.Unmarshal(client.payload, &got))
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Status, got.Status)
	assert.InDelta(t, rec.ResidualTon, got.ResidualTon, 1e-9)

	require.NoError(t, p.Close())
	assert.True(t, client.disconnected)
}

func TestMQTT_PublishError(t *testing.T) {
	client := &fakeMQTTClient{err: errors.New("not connected")}
	p := newMQTT(client, "furnace")
	err := p.Publish(context.Background(), sampleRecord())
	assert.ErrorContains(t, err, "not connected")
}

func TestKafka_Publish(t *testing.T) {
	w := &fakeKafkaWriter{}
	p := &Kafka{w: w}

	rec := sampleRecord()
	require.NoError(t, p.Publish(context.Background(), rec))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "2026-03-04T09:30:00Z", string(w.msgs[0].Key))
	assert.True(t, w.msgs[0].Time.Equal(rec.Timestamp))
	assert.Contains(t, string(w.msgs[0].Value), `"status":"caution"`)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafka_PublishError(t *testing.T) {
	p := &Kafka{w: &fakeKafkaWriter{err: errors.New("leader not available")}}
	assert.ErrorContains(t, p.Publish(context.Background(), sampleRecord()), "leader not available")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), sampleRecord()))
	assert.NoError(t, p.Close())
}
