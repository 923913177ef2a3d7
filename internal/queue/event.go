// Package queue carries order events to the message broker and back.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

// OrderCreatedQueue is the RabbitMQ queue and default Kafka topic name.
const OrderCreatedQueue = "order.created"

// OrderCreatedEvent is published after every ticket of an order has been
// reserved.  It carries enough for downstream consumers to log or notify
// without reading the catalog.
type OrderCreatedEvent struct {
	EventID    string            `json:"event_id"`
	OrderID    string            `json:"order_id"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Tickets    []model.OrderLine `json:"tickets"`
	Total      int               `json:"total"`
	Amount     float64           `json:"amount"`
	OccurredAt string            `json:"occurred_at"`
}

// NewOrderCreated stamps a fresh event and order id on the given lines.
func NewOrderCreated(email, phone string, lines []model.OrderLine) OrderCreatedEvent {
	var amount float64
	for _, l := range lines {
		amount += l.Price
	}
	return OrderCreatedEvent{
		EventID:    uuid.NewString(),
		OrderID:    uuid.NewString(),
		Email:      email,
		Phone:      phone,
		Tickets:    lines,
		Total:      len(lines),
		Amount:     amount,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
