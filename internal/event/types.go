package event

// EventType identifies the kind of payload an Event carries
type EventType string

const (
	ErrorEventType        EventType = "error"
	DeviceUpdateEventType EventType = "device-update"
	JobStateEventType     EventType = "job-state"
	JobProgressEventType  EventType = "job-progress"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}
