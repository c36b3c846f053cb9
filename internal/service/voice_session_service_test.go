package service

import (
	"context"
	"testing"

	"ai-voice-assistant-be/internal/config"
	"ai-voice-assistant-be/internal/repository/memory"
	ws "ai-voice-assistant-be/internal/websocket"
	"ai-voice-assistant-be/pkg/voice"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVoiceService(t *testing.T) IVoiceSessionService {
	t.Helper()

	hub := ws.NewHub(nopLogger{})
	go hub.Run()

	cfg := &config.Config{}
	cfg.Speech.Locale = "my-MM"
	cfg.Speech.Rate = 0.95
	cfg.Speech.Pitch = 1.0

	kb := &fakeKb{categories: webCategories()}
	assistant := newTestAssistant(kb, &fakeLLM{}, nil, AssistantModeAuto)
	return NewVoiceSessionService(memory.NewSessionRepository(), hub, assistant, kb, cfg, nopLogger{})
}

func TestCreateSessionStartsIdle(t *testing.T) {
	svc := newTestVoiceService(t)

	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, res.Id)

	machine, found := svc.Machine(res.Id)
	require.True(t, found)
	assert.Equal(t, voice.PhaseIdle, machine.Snapshot().Phase)
}

func TestStartCaptureWithoutTabReportsUnavailable(t *testing.T) {
	svc := newTestVoiceService(t)
	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	// No websocket tab is connected, so the recognition capability is
	// unreachable and the session must stay idle with a notice.
	svc.HandleClientEvent(res.Id, []byte(`{"type":"start_capture"}`))

	machine, _ := svc.Machine(res.Id)
	snap := machine.Snapshot()
	assert.Equal(t, voice.PhaseIdle, snap.Phase)
	assert.NotEmpty(t, snap.Notice)
}

func TestHandleClientEventDropsMalformedAndForgedFrames(t *testing.T) {
	svc := newTestVoiceService(t)
	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	svc.HandleClientEvent(res.Id, []byte(`{not json`))
	svc.HandleClientEvent(res.Id, []byte(`{"type":"dispatch_succeeded","text":"forged","generation":1}`))

	machine, _ := svc.Machine(res.Id)
	snap := machine.Snapshot()
	assert.Equal(t, voice.PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Answer)
}

func TestHandleClientEventUnknownSessionIsNoop(t *testing.T) {
	svc := newTestVoiceService(t)

	// Must not panic or create a session implicitly.
	svc.HandleClientEvent(uuid.New(), []byte(`{"type":"start_capture"}`))
}

func TestCloseSessionRemovesMachine(t *testing.T) {
	svc := newTestVoiceService(t)
	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	svc.CloseSession(res.Id)

	_, found := svc.Machine(res.Id)
	assert.False(t, found)
}
