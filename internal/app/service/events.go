package service

// Notifier pushes governance events to connected admin dashboards. The
// websocket hub implements it; services treat it as optional.
type Notifier interface {
	BroadcastEvent(eventType string, payload interface{})
}

// Event types pushed to the admin feed.
const (
	EventApplicationSubmitted = "application_submitted"
	EventReviewReported       = "review_reported"
)

type noopNotifier struct{}

func (noopNotifier) BroadcastEvent(string, interface{}) {}

// NoopNotifier is used when no admin feed is wired (tests, seed command).
var NoopNotifier Notifier = noopNotifier{}
