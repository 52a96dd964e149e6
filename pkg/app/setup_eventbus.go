package app

import (
	"github.com/amirasaad/finhub/pkg/service/notification"
)

// setupEventBus registers the background handlers. Notification writes are
// the only work the bus carries.
func (a *App) setupEventBus() {
	notification.Register(a.Deps.EventBus, a.NotificationService, a.Deps.Logger)
}
