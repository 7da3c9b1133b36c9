package events

import "fmt"

// EventType identifies a kind of event
type EventType string

// Event is the base interface for everything carried by the bus
type Event interface {
	GetType() EventType
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// DiagnosticEvent reports a dataset problem that was degraded instead of raised
type DiagnosticEvent struct {
	BaseEvent
	Bloodline string
	Element   string
	Label     string
	Value     int
	Message   string
}

// String renders the diagnostic for logs
func (e *DiagnosticEvent) String() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewFallback reports a missing pair resolved to the neutral default
func NewFallback(bloodline, element string, value int) *DiagnosticEvent {
	return &DiagnosticEvent{
		BaseEvent: BaseEvent{Type: EventTypeCompatibilityFallback},
		Bloodline: bloodline,
		Element:   element,
		Value:     value,
		Message:   fmt.Sprintf("no compatibility entry for %s/%s, using %d%%", bloodline, element, value),
	}
}

// NewDataIntegrity reports an out-of-band or missing table entry
func NewDataIntegrity(bloodline, element string, value int, message string) *DiagnosticEvent {
	return &DiagnosticEvent{
		BaseEvent: BaseEvent{Type: EventTypeDataIntegrity},
		Bloodline: bloodline,
		Element:   element,
		Value:     value,
		Message:   message,
	}
}

// NewUnknownCategory reports a category label the loader could not interpret
func NewUnknownCategory(bloodline, label string) *DiagnosticEvent {
	return &DiagnosticEvent{
		BaseEvent: BaseEvent{Type: EventTypeUnknownCategory},
		Bloodline: bloodline,
		Label:     label,
		Message:   fmt.Sprintf("ignoring unknown category %q for bloodline %s", label, bloodline),
	}
}
