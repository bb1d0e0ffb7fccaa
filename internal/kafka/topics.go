package kafka

import (
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"ticket-reservation/internal/config"
)

// EnsureTopicsExist creates the lifecycle topics if the broker does not have
// them yet. Failures on individual topics are non-fatal.
func EnsureTopicsExist(cfg config.KafkaConfig) error {
	conn, err := kafka.Dial("tcp", cfg.Brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	topics := []string{
		cfg.Topics.ReservationCreated,
		cfg.Topics.ReservationFailed,
		cfg.Topics.ReservationCancelled,
		cfg.Topics.ReservationPaid,
	}

	for _, topic := range topics {
		if topic == "" {
			continue
		}
		// Already-exists errors are fine; anything else is non-fatal too,
		// the producer will surface it on first publish.
		_ = controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}

	// Give the broker a moment to settle the new topics.
	time.Sleep(1 * time.Second)
	return nil
}
