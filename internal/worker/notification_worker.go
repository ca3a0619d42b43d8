package worker

import (
	"github.com/spec-kit/clinic-services/internal/events"
	"github.com/spec-kit/clinic-services/internal/service"
)

// StartNotificationWorker registers notification handlers and, when a relay
// is configured, forwards every event to it.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher, relay *events.RedisRelay) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if relay != nil && dispatcher != nil {
		relay.SubscribeAll(dispatcher)
	}
}
