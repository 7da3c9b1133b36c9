package events

// Diagnostic event types
const (
	// EventTypeCompatibilityFallback fires when a canonical pair is missing and 50% was used
	EventTypeCompatibilityFallback EventType = "compatibility.fallback"

	// EventTypeDataIntegrity fires for out-of-band values and incomplete tables
	EventTypeDataIntegrity EventType = "compatibility.data_integrity"

	// EventTypeUnknownCategory fires when the loader ignores an unrecognized category label
	EventTypeUnknownCategory EventType = "compatibility.unknown_category"
)

// DiagnosticTypes lists every diagnostic event type
var DiagnosticTypes = []EventType{
	EventTypeCompatibilityFallback,
	EventTypeDataIntegrity,
	EventTypeUnknownCategory,
}

// Listener priorities, lower runs first
const (
	PriorityRecorder = 10
	PriorityLogging  = 100
)
