package events

import (
	"fieldservice_backend/platform/events"
	"fieldservice_backend/platform/logger"
)

// InMemoryBus re-exports the platform implementation so modules only need
// this package for event infrastructure.
type InMemoryBus = events.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}
