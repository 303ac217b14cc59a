package worker

import (
	"github.com/spec-kit/ticket-tracker/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the event
// dispatcher. Delivery is synchronous with publication, so there is nothing
// to stop on shutdown.
func StartNotificationWorker(notifications *service.NotificationService) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
}
