package websocket

import (
	"ai-voice-assistant-be/pkg/voice"

	"github.com/google/uuid"
)

// SessionBridge exposes the browser's speech recognition and synthesis to the
// voice state machine. Commands go out as envelopes over the session's
// websocket; the browser echoes the generation token back on every result so
// stale completions can be discarded server-side.
type SessionBridge struct {
	hub       *Hub
	sessionID uuid.UUID
}

func NewSessionBridge(hub *Hub, sessionID uuid.UUID) *SessionBridge {
	return &SessionBridge{hub: hub, sessionID: sessionID}
}

type startRecognitionCommand struct {
	Locale     string `json:"locale"`
	Generation uint64 `json:"generation"`
}

type speakCommand struct {
	Text       string   `json:"text"`
	Locale     string   `json:"locale"`
	Rate       float64  `json:"rate"`
	Pitch      float64  `json:"pitch"`
	VoiceHints []string `json:"voice_hints"`
	Generation uint64   `json:"generation"`
}

// Start implements voice.Recognizer. Without a connected tab there is no
// microphone to drive, so the capability counts as unavailable.
func (b *SessionBridge) Start(locale string, generation uint64) error {
	if !b.hub.HasClient(b.sessionID) {
		return voice.ErrCapabilityUnavailable
	}
	b.hub.Send(b.sessionID, Envelope{
		Type: "start_recognition",
		Data: startRecognitionCommand{Locale: locale, Generation: generation},
	})
	return nil
}

// Stop implements voice.Recognizer.
func (b *SessionBridge) Stop() {
	b.hub.Send(b.sessionID, Envelope{Type: "stop_recognition"})
}

// Speak implements voice.Synthesizer.
func (b *SessionBridge) Speak(text string, opts voice.SpeechOptions, generation uint64) error {
	if !b.hub.HasClient(b.sessionID) {
		return voice.ErrCapabilityUnavailable
	}
	b.hub.Send(b.sessionID, Envelope{
		Type: "speak",
		Data: speakCommand{
			Text:       text,
			Locale:     opts.Locale,
			Rate:       opts.Rate,
			Pitch:      opts.Pitch,
			VoiceHints: opts.VoiceHints,
			Generation: generation,
		},
	})
	return nil
}

// Cancel implements voice.Synthesizer.
func (b *SessionBridge) Cancel() {
	b.hub.Send(b.sessionID, Envelope{Type: "cancel_speech"})
}
