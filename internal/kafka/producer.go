package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"ticket-reservation/internal/config"
	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
)

// Event is the envelope every lifecycle message is wrapped in.
type Event struct {
	EventID    string      `json:"event_id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type failedPayload struct {
	Reservation models.Reservation `json:"reservation"`
	Reason      string             `json:"reason"`
}

// Producer streams reservation lifecycle events. When disabled or in mock
// mode it only logs, so the services run without a broker.
type Producer struct {
	writer *kafka.Writer
	topics config.TopicConfig
	logger *logger.Logger
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	p := &Producer{topics: cfg.Topics, logger: log}

	if !cfg.Enabled || cfg.MockMode {
		log.Info("KAFKA", "producer running in mock mode, events are logged only")
		return p
	}

	p.writer = kafka.NewWriter(kafka.WriterConfig{
		Brokers:  cfg.Brokers,
		Balancer: &kafka.LeastBytes{},
	})
	return p
}

func (p *Producer) PublishReservationCreated(r models.Reservation) error {
	return p.publish(p.topics.ReservationCreated, r.ID, "ReservationCreated", r)
}

func (p *Producer) PublishReservationFailed(r models.Reservation, reason string) error {
	return p.publish(p.topics.ReservationFailed, r.ID, "ReservationFailed", failedPayload{Reservation: r, Reason: reason})
}

func (p *Producer) PublishReservationCancelled(r models.Reservation) error {
	return p.publish(p.topics.ReservationCancelled, r.ID, "ReservationCancelled", r)
}

func (p *Producer) PublishReservationPaid(r models.Reservation) error {
	return p.publish(p.topics.ReservationPaid, r.ID, "ReservationPaid", r)
}

func (p *Producer) publish(topic, key, eventType string, data interface{}) error {
	event := Event{
		EventID:    uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if p.writer == nil {
		p.logger.LogKafka("MOCK", topic, string(msgBytes))
		return nil
	}

	p.logger.LogKafka("PUBLISH", topic, fmt.Sprintf("%s %s", eventType, key))
	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: msgBytes,
	})
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
