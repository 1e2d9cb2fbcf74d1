// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/segmentio/kafka-go"
)

// PostCreatedType is the event type written for every new post.
const PostCreatedType = "post.created"

// Bounds on a single publish. An unreachable broker costs a post request at
// most PublishTimeout.
const (
	PublishTimeout   = 3 * time.Second
	WriteTimeout     = 2 * time.Second
	ReadTimeout      = 2 * time.Second
	MaxWriteAttempts = 2
)

// MessageWriter defines a Kafka writer abstraction.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PostCreated is the payload of a post.created message.
type PostCreated struct {
	Type       string      `json:"type"`
	Post       models.Post `json:"post"`
	OccurredAt int64       `json:"occurred_at"`
}

// KafkaPublisher writes post events to a topic keyed by author.
type KafkaPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

// NewKafkaWriter creates a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           WriteTimeout,
		ReadTimeout:            ReadTimeout,
		MaxAttempts:            MaxWriteAttempts,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, now: time.Now}
}

// PublishPostCreated writes a post.created message. Posts by the same author
// land on the same partition.
func (p *KafkaPublisher) PublishPostCreated(ctx context.Context, post models.Post) error {
	data, err := json.Marshal(PostCreated{
		Type:       PostCreatedType,
		Post:       post,
		OccurredAt: p.now().Unix(),
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(post.Username),
		Value: data,
	}
	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	logger.Log.Infow("post event published", "post_id", post.ID, "username", post.Username)
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishPostCreated(context.Context, models.Post) error { return nil }

func (NopPublisher) Close() error { return nil }
