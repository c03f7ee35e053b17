package worker

import (
	"github.com/soportek/helpdesk-service/internal/service"
)

// NotificationWorker binds the notification service to the ticket event
// stream at startup.
type NotificationWorker struct {
	notifications *service.NotificationService
}

// NewNotificationWorker builds the worker.
func NewNotificationWorker(notifications *service.NotificationService) *NotificationWorker {
	return &NotificationWorker{notifications: notifications}
}

// Start subscribes the notification handlers. Events are dispatched
// synchronously, so there is no goroutine to stop.
func (w *NotificationWorker) Start() {
	if w.notifications == nil {
		return
	}
	w.notifications.RegisterHandlers()
}
