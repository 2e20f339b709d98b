package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
)

// NotificationPublisher is the outbound contract for lifecycle notifications.
// Implementations are best-effort: the lifecycle manager invokes them
// fire-and-forget and never fails a transition on a publish error.
type NotificationPublisher interface {
	// PublishStatusChanged emits one lifecycle event per applied transition.
	PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error

	// PublishDeliveryCodeIssued sends the customer their delivery code
	// after the courier picks the order up.
	PublishDeliveryCodeIssued(ctx context.Context, orderID kernel.UUID, orderNumber, code string) error
}
