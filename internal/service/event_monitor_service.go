package service

import (
	"context"

	"shopping-assistant-be/internal/pkg/logger"
	"shopping-assistant-be/pkg/events"
	pktNats "shopping-assistant-be/pkg/nats"
)

// EventMonitorService tails the assistant event stream into the structured
// log, giving operators a single place to watch turn volume, cart adds and
// indexing progress.
type EventMonitorService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewEventMonitorService(sub *pktNats.Subscriber, log logger.ILogger) *EventMonitorService {
	return &EventMonitorService{
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *EventMonitorService) Start() {
	err := s.subscriber.Subscribe("assistant.>", "event-monitor-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("EventMonitor", "Failed to start event monitor subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("EventMonitor", "Event monitor started, listening to assistant.>", nil)
}

func (s *EventMonitorService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("EventMonitor", event.EventType(), event.Payload())
	return nil
}
