package voice

// EventType names every message the machine consumes: user commands and
// platform callbacks alike travel through the same event type so transitions
// stay deterministic and unit-testable without a browser runtime.
type EventType string

const (
	// User commands
	EventStartCapture EventType = "start_capture"
	EventDispatch     EventType = "dispatch"
	EventStopPlayback EventType = "stop_playback"
	EventCancel       EventType = "cancel"
	EventGreet        EventType = "greet"

	// Recognizer callbacks
	EventRecognitionStarted EventType = "recognition_started"
	EventTranscript         EventType = "transcript"
	EventRecognitionEnded   EventType = "recognition_ended"
	EventRecognitionError   EventType = "recognition_error"

	// Dispatch completions (posted by the machine's own worker)
	EventDispatchSucceeded EventType = "dispatch_succeeded"
	EventDispatchFailed    EventType = "dispatch_failed"

	// Synthesizer callbacks
	EventPlaybackStarted EventType = "playback_started"
	EventPlaybackEnded   EventType = "playback_ended"
	EventPlaybackError   EventType = "playback_error"
)

// Event is the single message type consumed by the machine. Generation zero
// means "not generation-checked" (user commands); platform callbacks echo the
// generation issued when their operation started so that trailing results
// after a cancellation are discarded.
type Event struct {
	Type       EventType
	Text       string
	Err        error
	Generation uint64
}
