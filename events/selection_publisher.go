package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/segmentio/kafka-go"
)

const TypeSelectionRecorded = "combo.selection.recorded"

// SelectionRecorded is published once a ComboSelection has committed, so the
// order subsystem can attach it as an orderable line.
type SelectionRecorded struct {
	Type        string    `json:"type"`
	Reference   string    `json:"reference"`
	SelectionID uint      `json:"selection_id"`
	ComboID     uint      `json:"combo_id"`
	UserID      *uint     `json:"user_id"`
	PricingMode string    `json:"pricing_mode"`
	TotalPrice  int64     `json:"total_price"`
	ItemCount   int       `json:"item_count"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func NewSelectionRecorded(s *entity.ComboSelection) SelectionRecorded {
	return SelectionRecorded{
		Type:        TypeSelectionRecorded,
		Reference:   s.Reference,
		SelectionID: s.ID,
		ComboID:     s.ComboID,
		UserID:      s.UserID,
		PricingMode: string(s.PricingMode),
		TotalPrice:  s.TotalPrice,
		ItemCount:   len(s.Items),
		RecordedAt:  s.CreatedAt,
	}
}

type SelectionPublisher interface {
	PublishSelectionRecorded(ctx context.Context, ev SelectionRecorded) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSelectionRecorded(context.Context, SelectionRecorded) error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaSelectionPublisher struct {
	writer messageWriter
}

func NewKafkaSelectionPublisher(w messageWriter) *KafkaSelectionPublisher {
	return &KafkaSelectionPublisher{writer: w}
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // same combo -> same partition
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           2 * time.Second,
		MaxAttempts:            3,
	}
}

func (p *KafkaSelectionPublisher) PublishSelectionRecorded(ctx context.Context, ev SelectionRecorded) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.ComboID), 10)),
		Value: body,
		Time:  ev.RecordedAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
			{Key: "reference", Value: []byte(ev.Reference)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

func (p *KafkaSelectionPublisher) Close() error {
	return p.writer.Close()
}
