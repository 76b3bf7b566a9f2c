package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/events"
)

// publishEvent fans an event out to subscribers. Handler failures are
// logged; they never undo the change that produced the event.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
