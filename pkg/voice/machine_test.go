package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-voice-assistant-be/internal/constant"
	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/pkg/answer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

type fakeRecognizer struct {
	mu          sync.Mutex
	startedGens []uint64
	stops       int
	unavailable bool
}

func (f *fakeRecognizer) Start(locale string, generation uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable {
		return ErrCapabilityUnavailable
	}
	f.startedGens = append(f.startedGens, generation)
	return nil
}

func (f *fakeRecognizer) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeRecognizer) starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.startedGens)
}

type fakeSynthesizer struct {
	mu     sync.Mutex
	calls  []string // "cancel" / "speak:<text>"
	spoken []string
}

func (f *fakeSynthesizer) Speak(text string, opts SpeechOptions, generation uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "speak:"+text)
	f.spoken = append(f.spoken, text)
	return nil
}

func (f *fakeSynthesizer) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "cancel")
}

func (f *fakeSynthesizer) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

type fakeAnswerer struct {
	answer  string
	err     error
	release chan struct{} // when set, Answer blocks until closed
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.answer, f.err
}

func newTestMachine(rec *fakeRecognizer, synth *fakeSynthesizer, ans *fakeAnswerer) *Machine {
	return NewMachine(
		NewSession(uuid.New()),
		rec,
		synth,
		ans,
		SpeechOptions{Locale: "my-MM", Rate: 0.95, Pitch: 1},
		nopLogger{},
	)
}

func waitForPhase(t *testing.T, m *Machine, phase Phase) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.Snapshot().Phase == phase
	}, time.Second, 5*time.Millisecond, "never reached phase %s", phase)
}

func TestHappyPathCaptureToPlayback(t *testing.T) {
	rec := &fakeRecognizer{}
	synth := &fakeSynthesizer{}
	ans := &fakeAnswerer{answer: "ဝန်ဆောင်မှု အဖြေ"}
	m := newTestMachine(rec, synth, ans)

	require.NoError(t, m.Handle(Event{Type: EventStartCapture}))
	assert.Equal(t, PhaseListening, m.Snapshot().Phase)

	require.NoError(t, m.Handle(Event{Type: EventTranscript, Text: "ဝက်ဘ်ဆိုက် လုပ်ပေးလား", Generation: 1}))
	waitForPhase(t, m, PhaseSpeaking)

	snap := m.Snapshot()
	assert.Equal(t, "ဝက်ဘ်ဆိုက် လုပ်ပေးလား", snap.Question)
	assert.Equal(t, "ဝန်ဆောင်မှု အဖြေ", snap.Answer)

	require.NoError(t, m.Handle(Event{Type: EventPlaybackStarted, Generation: 1}))
	assert.True(t, m.Snapshot().IsPlaying)

	require.NoError(t, m.Handle(Event{Type: EventPlaybackEnded, Generation: 1}))
	snap = m.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.False(t, snap.IsPlaying)
}

func TestStartCaptureRejectedWhileDispatching(t *testing.T) {
	rec := &fakeRecognizer{}
	ans := &fakeAnswerer{answer: "ok", release: make(chan struct{})}
	m := newTestMachine(rec, &fakeSynthesizer{}, ans)

	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "question"}))
	assert.Equal(t, PhaseDispatching, m.Snapshot().Phase)

	require.NoError(t, m.Handle(Event{Type: EventStartCapture}))
	assert.Equal(t, PhaseDispatching, m.Snapshot().Phase)
	assert.Equal(t, 0, rec.starts())

	close(ans.release)
	waitForPhase(t, m, PhaseSpeaking)
}

func TestDispatchSingleFlight(t *testing.T) {
	ans := &fakeAnswerer{answer: "ok", release: make(chan struct{})}
	m := newTestMachine(&fakeRecognizer{}, &fakeSynthesizer{}, ans)

	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "first"}))
	err := m.Handle(Event{Type: EventDispatch, Text: "second"})
	assert.ErrorIs(t, err, ErrDispatchInFlight)
	assert.Equal(t, "first", m.Snapshot().Question)

	close(ans.release)
	waitForPhase(t, m, PhaseSpeaking)
}

func TestPlaybackCancelPrecedesEverySpeak(t *testing.T) {
	synth := &fakeSynthesizer{}
	ans := &fakeAnswerer{answer: "answer one"}
	m := newTestMachine(&fakeRecognizer{}, synth, ans)

	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "q1"}))
	waitForPhase(t, m, PhaseSpeaking)

	// Second answer arrives while the first is still playing.
	ans.answer = "answer two"
	require.NoError(t, m.Handle(Event{Type: EventPlaybackStarted, Generation: 1}))
	require.NoError(t, m.Handle(Event{Type: EventPlaybackEnded, Generation: 1}))
	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "q2"}))
	waitForPhase(t, m, PhaseSpeaking)

	calls := synth.callLog()
	require.Len(t, calls, 4)
	assert.Equal(t, "cancel", calls[0])
	assert.Equal(t, "speak:answer one", calls[1])
	assert.Equal(t, "cancel", calls[2])
	assert.Equal(t, "speak:answer two", calls[3])
}

func TestDispatchDuringPlaybackSupersedesUtterance(t *testing.T) {
	synth := &fakeSynthesizer{}
	ans := &fakeAnswerer{answer: "answer one"}
	m := newTestMachine(&fakeRecognizer{}, synth, ans)

	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "q1"}))
	waitForPhase(t, m, PhaseSpeaking)
	require.NoError(t, m.Handle(Event{Type: EventPlaybackStarted, Generation: 1}))

	// Second question interrupts the first answer mid-utterance.
	ans.answer = "answer two"
	ans.release = make(chan struct{})
	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "q2"}))
	assert.Equal(t, PhaseDispatching, m.Snapshot().Phase)
	assert.Contains(t, synth.callLog(), "cancel")

	// The superseded utterance winds down while the dispatch is still
	// in flight; its end event must not reset the session.
	require.NoError(t, m.Handle(Event{Type: EventPlaybackEnded, Generation: 1}))
	assert.Equal(t, PhaseDispatching, m.Snapshot().Phase)

	close(ans.release)
	waitForPhase(t, m, PhaseSpeaking)
	assert.Equal(t, "answer two", m.Snapshot().Answer)
	assert.Equal(t, "speak:answer two", synth.callLog()[len(synth.callLog())-1])
}

func TestDispatchFailureIsVoicedAndResumable(t *testing.T) {
	synth := &fakeSynthesizer{}
	ans := &fakeAnswerer{err: errors.New("connection refused")}
	m := newTestMachine(&fakeRecognizer{}, synth, ans)

	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "my question"}))
	waitForPhase(t, m, PhaseError)

	snap := m.Snapshot()
	assert.Equal(t, constant.AnswerDispatchFailure, snap.Answer)
	// The transcript survives the failure so the user can retry.
	assert.Equal(t, "my question", snap.Question)

	// The apology went through the same playback path.
	calls := synth.callLog()
	require.Len(t, calls, 2)
	assert.Equal(t, "speak:"+constant.AnswerDispatchFailure, calls[1])

	require.NoError(t, m.Handle(Event{Type: EventPlaybackEnded, Generation: 1}))
	assert.Equal(t, PhaseIdle, m.Snapshot().Phase)

	// Session stays usable: a retry dispatch succeeds.
	ans.err = nil
	ans.answer = "recovered"
	require.NoError(t, m.Handle(Event{Type: EventDispatch}))
	waitForPhase(t, m, PhaseSpeaking)
	assert.Equal(t, "recovered", m.Snapshot().Answer)
}

func TestRegionRestrictedGetsDistinctMessage(t *testing.T) {
	ans := &fakeAnswerer{err: fmt.Errorf("adapter: %w", answer.ErrRegionRestricted)}
	m := newTestMachine(&fakeRecognizer{}, &fakeSynthesizer{}, ans)

	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "question"}))
	waitForPhase(t, m, PhaseError)

	snap := m.Snapshot()
	assert.Equal(t, constant.AnswerRegionRestricted, snap.Answer)
	assert.NotEqual(t, constant.AnswerDispatchFailure, snap.Answer)
}

func TestRecognitionEndWithoutTranscriptIsSilent(t *testing.T) {
	m := newTestMachine(&fakeRecognizer{}, &fakeSynthesizer{}, &fakeAnswerer{})

	require.NoError(t, m.Handle(Event{Type: EventStartCapture}))
	require.NoError(t, m.Handle(Event{Type: EventRecognitionEnded, Generation: 1}))

	snap := m.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Question)
}

func TestStaleTranscriptAfterCancelDiscarded(t *testing.T) {
	rec := &fakeRecognizer{}
	m := newTestMachine(rec, &fakeSynthesizer{}, &fakeAnswerer{})

	require.NoError(t, m.Handle(Event{Type: EventStartCapture})) // generation 1
	require.NoError(t, m.Handle(Event{Type: EventCancel}))
	assert.Equal(t, 1, rec.stops)

	// Trailing result from the cancelled capture.
	require.NoError(t, m.Handle(Event{Type: EventTranscript, Text: "late result", Generation: 1}))

	snap := m.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Question)
}

func TestCapabilityUnavailableReportedOnce(t *testing.T) {
	rec := &fakeRecognizer{unavailable: true}
	m := newTestMachine(rec, &fakeSynthesizer{}, &fakeAnswerer{})

	err := m.Handle(Event{Type: EventStartCapture})
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)

	snap := m.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.NotEmpty(t, snap.Notice)
}

func TestStopPlaybackReturnsToIdle(t *testing.T) {
	synth := &fakeSynthesizer{}
	m := newTestMachine(&fakeRecognizer{}, synth, &fakeAnswerer{answer: "text"})

	require.NoError(t, m.Handle(Event{Type: EventDispatch, Text: "q"}))
	waitForPhase(t, m, PhaseSpeaking)
	require.NoError(t, m.Handle(Event{Type: EventPlaybackStarted, Generation: 1}))

	require.NoError(t, m.Handle(Event{Type: EventStopPlayback}))

	snap := m.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.False(t, snap.IsPlaying)
	assert.Contains(t, synth.callLog(), "cancel")
}

func TestGreetSpeaksOnlyWhenIdle(t *testing.T) {
	synth := &fakeSynthesizer{}
	m := newTestMachine(&fakeRecognizer{}, synth, &fakeAnswerer{answer: "text"})

	require.NoError(t, m.Handle(Event{Type: EventGreet}))
	assert.Equal(t, PhaseSpeaking, m.Snapshot().Phase)
	assert.Equal(t, []string{constant.GreetingMessage}, synth.spoken)

	// A second greet mid-playback is ignored.
	require.NoError(t, m.Handle(Event{Type: EventGreet}))
	assert.Len(t, synth.spoken, 1)

	require.NoError(t, m.Handle(Event{Type: EventPlaybackEnded, Generation: 1}))
	assert.Equal(t, PhaseIdle, m.Snapshot().Phase)
}
