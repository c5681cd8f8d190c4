package event

// Manager fans events out to listeners registered per event type
type Manager interface {
	RegisterListener(eventType EventType, listener chan Event) int
	RemoveListener(id int) int
	Send(event Event)
	ReportError(err error)
}
