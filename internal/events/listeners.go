package events

import (
	"sync"

	"github.com/KirkDiggler/bloodbond/internal/logger"
)

// Recorder keeps every diagnostic it receives
type Recorder struct {
	mu     sync.Mutex
	events []*DiagnosticEvent
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ID() string    { return "diagnostics-recorder" }
func (r *Recorder) Priority() int { return PriorityRecorder }

// HandleEvent stores diagnostic events and ignores anything else
func (r *Recorder) HandleEvent(event Event) error {
	diag, ok := event.(*DiagnosticEvent)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, diag)
	return nil
}

// Events returns a copy of the recorded diagnostics
func (r *Recorder) Events() []*DiagnosticEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*DiagnosticEvent, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded diagnostics of one type
func (r *Recorder) OfType(eventType EventType) []*DiagnosticEvent {
	var out []*DiagnosticEvent
	for _, e := range r.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LogListener writes diagnostics to the package logger at warning level
type LogListener struct{}

func (LogListener) ID() string    { return "diagnostics-logger" }
func (LogListener) Priority() int { return PriorityLogging }

func (LogListener) HandleEvent(event Event) error {
	if diag, ok := event.(*DiagnosticEvent); ok {
		logger.Warning(diag.Message,
			"type", string(diag.Type),
			"bloodline", diag.Bloodline,
			"element", diag.Element,
		)
	}
	return nil
}
