package voice

import (
	"context"

	"github.com/google/uuid"
)

// Phase is the observable stage of a voice interaction.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseListening   Phase = "listening"
	PhaseTranscribed Phase = "transcribed"
	PhaseDispatching Phase = "dispatching"
	PhaseAnswered    Phase = "answered"
	PhaseSpeaking    Phase = "speaking"
	PhaseError       Phase = "error"
)

// Session is the state of one active user interaction. Exactly one is live
// per connected client, and it is mutated only by the machine's transition
// handler, never directly by transport callbacks.
//
// The generation counters implement the stale-event guard: each start of a
// recognition, dispatch or playback bumps its counter, and completion events
// carrying an older generation are discarded.
type Session struct {
	ID        uuid.UUID
	Phase     Phase
	Question  string
	Answer    string
	IsPlaying bool
	Notice    string // one-shot report (e.g. capability unavailable)

	recognitionGen uint64
	dispatchGen    uint64
	playbackGen    uint64

	cancelDispatch context.CancelFunc
}

func NewSession(id uuid.UUID) *Session {
	return &Session{
		ID:    id,
		Phase: PhaseIdle,
	}
}

// Snapshot is the UI-observable projection of a session, pushed to clients
// after every transition.
type Snapshot struct {
	SessionID uuid.UUID `json:"session_id"`
	Phase     Phase     `json:"phase"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	IsPlaying bool      `json:"is_playing"`
	Notice    string    `json:"notice,omitempty"`
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		SessionID: s.ID,
		Phase:     s.Phase,
		Question:  s.Question,
		Answer:    s.Answer,
		IsPlaying: s.IsPlaying,
		Notice:    s.Notice,
	}
}
