package eventbus

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amirasaad/finhub/pkg/domain/events"
)

// envelope is the wire form shared by the redis and kafka transports.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func encodeEnvelope(event events.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.Type(), err)
	}
	envBytes, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope %s: %w", event.Type(), err)
	}
	return envBytes, nil
}

// decodeEnvelope rebuilds the concrete event using the events.EventTypes
// registry.
func decodeEnvelope(raw []byte) (events.EventType, events.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	eventType := events.EventType(env.Type)
	constructor, ok := events.EventTypes[eventType]
	if !ok {
		return eventType, nil, fmt.Errorf("unknown event type %q", env.Type)
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		return eventType, nil, fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	return eventType, evt, nil
}

func topicNameFor(prefix string, eventType events.EventType) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "finhub.events"
	}
	return fmt.Sprintf("%s.%s", prefix, strings.ToLower(eventType.String()))
}

func dlqNameFor(name string) string {
	return name + ".dlq"
}
