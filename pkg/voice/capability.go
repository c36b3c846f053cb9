package voice

import (
	"context"
	"errors"
)

// ErrCapabilityUnavailable is reported once to the UI when the platform
// offers no speech capability. It is not retried.
var ErrCapabilityUnavailable = errors.New("voice: speech capability unavailable")

// DefaultVoiceHints orders the synthesizer voice preference: a quality hint
// match on the target locale wins, then any voice on the locale, then the
// platform default.
var DefaultVoiceHints = []string{"Neural", "Google", "Natural"}

// SpeechOptions parameterizes synthesized playback.
type SpeechOptions struct {
	Locale     string   `json:"locale"`
	Rate       float64  `json:"rate"`
	Pitch      float64  `json:"pitch"`
	VoiceHints []string `json:"voice_hints,omitempty"`
}

// Recognizer is the injected speech-capture capability: single-utterance,
// final-results-only. Results do not return from Start; they arrive later as
// machine events (EventTranscript, EventRecognitionEnded,
// EventRecognitionError) stamped with the passed generation.
type Recognizer interface {
	// Start begins one capture in the given locale. Returns
	// ErrCapabilityUnavailable when the platform has no recognizer.
	Start(locale string, generation uint64) error

	// Stop ends an in-progress capture. A trailing result delivered after
	// Stop carries a stale generation and is discarded by the machine.
	Stop()
}

// Synthesizer is the injected speech-playback capability. Playback progress
// arrives as machine events stamped with the passed generation.
type Synthesizer interface {
	// Speak queues text for playback. The machine always calls Cancel before
	// Speak, so at most one utterance is active per session.
	Speak(text string, opts SpeechOptions, generation uint64) error

	// Cancel stops all in-progress speech.
	Cancel()
}

// Answerer is the dispatch boundary: it resolves a question to final answer
// text (deterministic retrieval or the language-model pipeline). The machine
// imposes no timeout of its own; the implementation bounds the round trip.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}
