package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"courze/pkg/requestcontext"
)

// Topic is the ledger event stream topic.
const Topic = "courze.ledger.events"

// KafkaPublisher emits ledger events to Kafka. Events for the same
// (user, course) pair share a record key so consumers see them in ledger
// order.
type KafkaPublisher struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewKafkaPublisher connects to the brokers and makes sure the topic exists.
func NewKafkaPublisher(ctx context.Context, brokers []string, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client); err != nil {
		client.Close()
		return nil, err
	}

	return &KafkaPublisher{client: client, logger: logger}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client) error {
	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, 3, 1, nil, Topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", Topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", Topic, resp.Err)
	}
	return nil
}

// Emit publishes the event, stamping id, timestamp, and request-scoped
// metadata when the caller left them empty.
func (p *KafkaPublisher) Emit(ctx context.Context, e Event) error {
	p.stamp(ctx, &e)

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(fmt.Sprintf("%s/%s", e.UserID, e.CourseID)),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce event %s: %w", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) stamp(ctx context.Context, e *Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.RequestID == "" {
		e.RequestID = requestcontext.RequestID(ctx)
	}
	if e.ClientPlatform == "" {
		e.ClientPlatform = requestcontext.ClientPlatform(ctx)
	}
}

// Close flushes buffered records and releases the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
