// Package events publishes product lifecycle notifications to a broker.
package events

import (
	"context"
	"encoding/json"
	"time"

	"catalog/internal/models"
)

// Type names a product lifecycle event.
type Type string

const (
	ProductCreated Type = "product.created"
	ProductUpdated Type = "product.updated"
	ProductDeleted Type = "product.deleted"
)

// ProductEvent is the message body published after a successful mutation.
// Product is nil for deletions.
type ProductEvent struct {
	Type       Type            `json:"type"`
	ProductID  string          `json:"productId"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// NewProductEvent stamps an event with the current time.
func NewProductEvent(eventType Type, productID string, product *models.Product) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}

// Encode marshals the event to JSON.
func (e ProductEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers product events.
type Publisher interface {
	Publish(ctx context.Context, event ProductEvent) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, ProductEvent) error { return nil }

func (Noop) Close() error { return nil }
