// Package kafka publishes order lifecycle notifications to a Kafka topic.
// Downstream consumers fan the events out to customer, vendor and courier
// channels; this process only produces.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// Message kinds written to the notifications topic.
const (
	kindStatusChanged = "order.status_changed"
	kindCodeIssued    = "order.delivery_code_issued"
)

// statusChangedMessage is the wire payload for an applied transition.
type statusChangedMessage struct {
	Kind        string    `json:"kind"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ActorRole   string    `json:"actorRole"`
	ActorID     string    `json:"actorId"`
	At          time.Time `json:"at"`
	Recipients  []string  `json:"recipients"`
}

// codeIssuedMessage is the wire payload carrying the delivery code to the
// customer after pickup.
type codeIssuedMessage struct {
	Kind        string `json:"kind"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Code        string `json:"code"`
}

// NotificationPublisher implements ports.NotificationPublisher on top of a
// kafka-go writer. Messages are keyed by order ID so all events of one order
// land on the same partition in order.
type NotificationPublisher struct {
	writer *kafka.Writer
}

// NewNotificationPublisher creates a publisher writing to the given topic.
// brokersCSV is a comma-separated broker list.
func NewNotificationPublisher(brokersCSV, topic string) *NotificationPublisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	return &NotificationPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishStatusChanged emits one notification per applied transition.
func (p *NotificationPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error {
	recipients := make([]string, 0, 3)
	for _, role := range event.RecipientRoles() {
		recipients = append(recipients, role.String())
	}

	return p.publish(ctx, event.OrderID, statusChangedMessage{
		Kind:        kindStatusChanged,
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		From:        event.From.String(),
		To:          event.To.String(),
		ActorRole:   event.ActorRole.String(),
		ActorID:     event.ActorID.String(),
		At:          event.At,
		Recipients:  recipients,
	})
}

// PublishDeliveryCodeIssued sends the customer their delivery code after the
// courier picks the order up.
func (p *NotificationPublisher) PublishDeliveryCodeIssued(
	ctx context.Context, orderID kernel.UUID, orderNumber, code string,
) error {
	return p.publish(ctx, orderID, codeIssuedMessage{
		Kind:        kindCodeIssued,
		OrderID:     orderID.String(),
		OrderNumber: orderNumber,
		Code:        code,
	})
}

// Close flushes and closes the underlying writer.
func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}

func (p *NotificationPublisher) publish(ctx context.Context, orderID kernel.UUID, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID.String()),
		Value: data,
		Time:  time.Now().UTC(),
	})
}
