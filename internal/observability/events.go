package observability

import "time"

// EventEnvelope wraps feed connection events published to the event exchange.
type EventEnvelope struct {
	EventType  string      `json:"event_type"`
	EventName  string      `json:"event_name"`
	OccurredAt string      `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Stamp fills OccurredAt and returns the envelope, for fluent publish calls.
func (e EventEnvelope) Stamp() EventEnvelope {
	e.OccurredAt = time.Now().UTC().Format(time.RFC3339Nano)
	return e
}

// BuildHeaders assembles AMQP message headers used to correlate events with
// traces and request logs. Empty values are omitted.
func BuildHeaders(requestID, traceID string) map[string]string {
	headers := map[string]string{}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}
