package domain

import "time"

// EventType identifies an observable state change in the core.
type EventType string

const (
	EventRatesUpdated       EventType = "rates_updated"
	EventLoadingChanged     EventType = "loading_changed"
	EventServiceDegraded    EventType = "service_degraded"
	EventTransactionUpdated EventType = "transaction_updated"
)

// Event is published to subscribers when observable state changes.
// Exactly one payload field is set, matching Type.
type Event struct {
	Type        EventType            `json:"type"`
	At          time.Time            `json:"at"`
	Rates       *RateTable           `json:"rates,omitempty"`
	Loading     *bool                `json:"loading,omitempty"`
	Message     string               `json:"message,omitempty"`
	Transaction *PurchaseTransaction `json:"transaction,omitempty"`
}
