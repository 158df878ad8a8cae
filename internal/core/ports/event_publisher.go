package ports

// EventPublisher is the outbound port lifecycle commands use to announce
// state changes. Publishing is fire-and-forget: implementations must not block
// the caller on subscriber handlers, and a failing subscriber must never
// surface here.
type EventPublisher interface {
	Publish(eventType string, payload any)
}
