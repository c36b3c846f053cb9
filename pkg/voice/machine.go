package voice

import (
	"context"
	"errors"
	"sync"

	"ai-voice-assistant-be/internal/constant"
	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/pkg/answer"
)

// ErrDispatchInFlight rejects a dispatch issued while another one is still
// running (single-flight). The caller waits or cancels first.
var ErrDispatchInFlight = errors.New("voice: dispatch already in flight")

// Machine drives one session through capture → transcription → dispatch →
// response → playback. All transitions are serialized under one mutex, so
// events are processed in arrival order and at most one of recognition,
// dispatch and playback is active at a time. Async completions re-enter
// through Handle stamped with the generation captured when their operation
// started; anything stale is dropped.
type Machine struct {
	mu      sync.Mutex
	session *Session

	recognizer  Recognizer
	synthesizer Synthesizer
	answerer    Answerer
	speech      SpeechOptions
	logger      logger.ILogger

	// onChange receives a snapshot after every accepted transition. Called
	// under the machine lock; implementations must not re-enter Handle.
	onChange func(Snapshot)
}

func NewMachine(
	session *Session,
	recognizer Recognizer,
	synthesizer Synthesizer,
	answerer Answerer,
	speech SpeechOptions,
	log logger.ILogger,
) *Machine {
	if len(speech.VoiceHints) == 0 {
		speech.VoiceHints = DefaultVoiceHints
	}
	return &Machine{
		session:     session,
		recognizer:  recognizer,
		synthesizer: synthesizer,
		answerer:    answerer,
		speech:      speech,
		logger:      log,
	}
}

// OnChange registers the snapshot observer. Must be set before events flow.
func (m *Machine) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Snapshot returns the current UI-observable state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.snapshot()
}

// Handle applies one event. Rejected commands return an error; every other
// anomaly (stale generation, event in the wrong phase) is a documented no-op.
func (m *Machine) Handle(ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session

	switch ev.Type {
	case EventStartCapture:
		return m.startCapture()

	case EventRecognitionStarted:
		// Confirmation only; Listening was entered when capture started.
		return nil

	case EventTranscript:
		if s.Phase != PhaseListening || m.stale(ev.Generation, s.recognitionGen) {
			// Recognition is single-shot: a transcript in any other phase is
			// a trailing result and is ignored.
			return nil
		}
		// First recognized alternative only; the bridge already unwraps it.
		s.Question = ev.Text
		s.Phase = PhaseTranscribed
		s.Notice = ""
		m.notify()
		m.startDispatch()
		return nil

	case EventRecognitionEnded:
		if s.Phase != PhaseListening || m.stale(ev.Generation, s.recognitionGen) {
			return nil
		}
		// Ended without a transcript: silent cancellation, not an error.
		s.Phase = PhaseIdle
		m.notify()
		return nil

	case EventRecognitionError:
		if s.Phase != PhaseListening || m.stale(ev.Generation, s.recognitionGen) {
			return nil
		}
		m.logger.Warn("VoiceSession", "Recognition error", map[string]interface{}{
			"session_id": s.ID,
			"error":      errText(ev.Err),
		})
		s.Phase = PhaseIdle
		m.notify()
		return nil

	case EventDispatch:
		if s.Phase == PhaseDispatching {
			return ErrDispatchInFlight
		}
		if ev.Text != "" {
			s.Question = ev.Text // typed question path
		}
		if s.Question == "" {
			return nil
		}
		m.startDispatch()
		return nil

	case EventDispatchSucceeded:
		if s.Phase != PhaseDispatching || m.stale(ev.Generation, s.dispatchGen) {
			return nil
		}
		s.cancelDispatch = nil
		s.Answer = ev.Text
		s.Phase = PhaseAnswered
		m.notify()
		// Hands-free operation: playback starts unconditionally once an
		// answer is available.
		m.startPlayback(s.Answer, PhaseSpeaking)
		return nil

	case EventDispatchFailed:
		if s.Phase != PhaseDispatching || m.stale(ev.Generation, s.dispatchGen) {
			return nil
		}
		s.cancelDispatch = nil
		s.Answer = failureAnswer(ev.Err)
		m.logger.Error("VoiceSession", "Dispatch failed", map[string]interface{}{
			"session_id": s.ID,
			"error":      errText(ev.Err),
		})
		// The transcript is kept so the user can retry the same question.
		// The apology is voiced through the same playback path as answers.
		m.startPlayback(s.Answer, PhaseError)
		return nil

	case EventPlaybackStarted:
		if m.stale(ev.Generation, s.playbackGen) {
			return nil
		}
		s.IsPlaying = true
		m.notify()
		return nil

	case EventPlaybackEnded, EventPlaybackError:
		if m.stale(ev.Generation, s.playbackGen) {
			return nil
		}
		if s.Phase != PhaseSpeaking && s.Phase != PhaseError {
			return nil
		}
		s.IsPlaying = false
		s.Phase = PhaseIdle
		m.notify()
		return nil

	case EventGreet:
		// Synthesizer self-test: voice the greeting when nothing is active.
		if s.Phase != PhaseIdle {
			return nil
		}
		m.startPlayback(constant.GreetingMessage, PhaseSpeaking)
		return nil

	case EventStopPlayback:
		m.stopPlayback()
		s.Phase = PhaseIdle
		m.notify()
		return nil

	case EventCancel:
		m.cancelAll()
		return nil

	default:
		m.logger.Warn("VoiceSession", "Unknown event ignored", map[string]interface{}{
			"session_id": s.ID,
			"type":       string(ev.Type),
		})
		return nil
	}
}

// --- transition helpers (called with the lock held) ---

func (m *Machine) startCapture() error {
	s := m.session

	if s.Phase != PhaseIdle {
		// Notably rejected while Dispatching: recognition cannot overlap
		// with an in-flight request.
		m.logger.Debug("VoiceSession", "startCapture rejected", map[string]interface{}{
			"session_id": s.ID,
			"phase":      string(s.Phase),
		})
		return nil
	}

	if m.recognizer == nil {
		s.Notice = "speech capability unavailable"
		m.notify()
		return ErrCapabilityUnavailable
	}

	s.recognitionGen++
	if err := m.recognizer.Start(m.speech.Locale, s.recognitionGen); err != nil {
		if errors.Is(err, ErrCapabilityUnavailable) {
			s.Notice = "speech capability unavailable"
			m.notify()
			return ErrCapabilityUnavailable
		}
		m.logger.Error("VoiceSession", "Recognizer start failed", map[string]interface{}{
			"session_id": s.ID,
			"error":      err.Error(),
		})
		return err
	}

	s.Phase = PhaseListening
	s.Notice = ""
	m.notify()
	return nil
}

func (m *Machine) startDispatch() {
	s := m.session

	// A new question supersedes an answer still being voiced; bumping
	// playbackGen keeps the old utterance's end event from touching
	// the phase mid-dispatch.
	if s.Phase == PhaseSpeaking || s.Phase == PhaseError {
		m.stopPlayback()
	}

	s.Phase = PhaseDispatching
	s.dispatchGen++
	gen := s.dispatchGen

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelDispatch = cancel
	question := s.Question
	m.notify()

	go func() {
		text, err := m.answerer.Answer(ctx, question)
		cancel()
		if err != nil {
			m.Handle(Event{Type: EventDispatchFailed, Err: err, Generation: gen})
			return
		}
		m.Handle(Event{Type: EventDispatchSucceeded, Text: text, Generation: gen})
	}()
}

// startPlayback cancels any active utterance, then queues text. The phase
// argument lets error answers stay observable as errors while they are
// voiced; playback end returns the session to Idle either way.
func (m *Machine) startPlayback(text string, phase Phase) {
	s := m.session

	if m.synthesizer == nil {
		s.Phase = PhaseIdle
		m.notify()
		return
	}

	// At most one active utterance, system-wide per session.
	m.synthesizer.Cancel()
	s.IsPlaying = false
	s.playbackGen++

	if err := m.synthesizer.Speak(text, m.speech, s.playbackGen); err != nil {
		m.logger.Warn("VoiceSession", "Playback failed to start", map[string]interface{}{
			"session_id": s.ID,
			"error":      err.Error(),
		})
		s.Phase = PhaseIdle
		m.notify()
		return
	}

	s.Phase = phase
	m.notify()
}

func (m *Machine) stopPlayback() {
	s := m.session
	if m.synthesizer != nil {
		m.synthesizer.Cancel()
	}
	s.playbackGen++
	s.IsPlaying = false
}

// cancelAll is the cancel-from-any-state path: it also covers a
// never-resolving dispatch by abandoning its generation.
func (m *Machine) cancelAll() {
	s := m.session

	if s.cancelDispatch != nil {
		s.cancelDispatch()
		s.cancelDispatch = nil
	}
	s.dispatchGen++

	if s.Phase == PhaseListening && m.recognizer != nil {
		m.recognizer.Stop()
	}
	s.recognitionGen++

	m.stopPlayback()

	s.Phase = PhaseIdle
	m.notify()
}

func (m *Machine) notify() {
	if m.onChange != nil {
		m.onChange(m.session.snapshot())
	}
}

// stale reports whether a generation-stamped event belongs to an operation
// that has since been cancelled or superseded.
func (m *Machine) stale(got, current uint64) bool {
	return got != 0 && got != current
}

func failureAnswer(err error) string {
	if errors.Is(err, answer.ErrRegionRestricted) {
		return constant.AnswerRegionRestricted
	}
	return constant.AnswerDispatchFailure
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
