package models

import "time"

// ProductCreatedEventType is the routing type of ProductCreatedEvent.
const ProductCreatedEventType = "product.created"

// ProductCreatedEvent is published after a product is persisted.
type ProductCreatedEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Product    Product   `json:"product"`
	OccurredAt time.Time `json:"occurred_at"`
}
