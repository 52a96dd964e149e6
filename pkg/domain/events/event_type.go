package events

// EventType represents the type of an event in the system.
type EventType string

const (
	EventTypeNotificationRequested EventType = "Notification.Requested"
)

func (t EventType) String() string { return string(t) }

// Event is anything the event bus can carry.
type Event interface {
	Type() string
}

// EventTypes builds empty events by type so transports can decode payloads.
var EventTypes = map[EventType]func() Event{
	EventTypeNotificationRequested: func() Event { return &NotificationRequested{} },
}
