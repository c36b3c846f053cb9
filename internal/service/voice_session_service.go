package service

import (
	"context"
	"encoding/json"
	"errors"

	"ai-voice-assistant-be/internal/config"
	"ai-voice-assistant-be/internal/dto"
	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/internal/repository/memory"
	ws "ai-voice-assistant-be/internal/websocket"
	"ai-voice-assistant-be/pkg/voice"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("voice session not found")

type IVoiceSessionService interface {
	CreateSession(ctx context.Context) (*dto.CreateVoiceSessionResponse, error)
	Machine(sessionID uuid.UUID) (*voice.Machine, bool)
	HandleClientEvent(sessionID uuid.UUID, payload []byte)
	CloseSession(sessionID uuid.UUID)
}

type VoiceSessionService struct {
	sessions  *memory.SessionRepository
	hub       *ws.Hub
	assistant IAssistantService
	kb        IKnowledgeBaseService
	speech    voice.SpeechOptions
	logger    logger.ILogger
}

func NewVoiceSessionService(
	sessions *memory.SessionRepository,
	hub *ws.Hub,
	assistant IAssistantService,
	kb IKnowledgeBaseService,
	cfg *config.Config,
	log logger.ILogger,
) IVoiceSessionService {
	return &VoiceSessionService{
		sessions:  sessions,
		hub:       hub,
		assistant: assistant,
		kb:        kb,
		speech: voice.SpeechOptions{
			Locale: cfg.Speech.Locale,
			Rate:   cfg.Speech.Rate,
			Pitch:  cfg.Speech.Pitch,
		},
		logger: log,
	}
}

// CreateSession builds a session whose recognition and synthesis run in the
// caller's browser, reached through the websocket bridge, and whose answers
// come from the assistant service.
func (s *VoiceSessionService) CreateSession(_ context.Context) (*dto.CreateVoiceSessionResponse, error) {
	// Each session starts against a fresh category set.
	if s.kb != nil {
		s.kb.Invalidate()
	}

	id := uuid.New()
	bridge := ws.NewSessionBridge(s.hub, id)

	machine := voice.NewMachine(
		voice.NewSession(id),
		bridge,
		bridge,
		&assistantAnswerer{assistant: s.assistant},
		s.speech,
		s.logger,
	)
	machine.OnChange(func(snap voice.Snapshot) {
		s.hub.Send(id, ws.Envelope{Type: "state", Data: snap})
	})

	s.sessions.Save(id, machine)
	s.logger.Info("VoiceSessionService", "Session created", map[string]interface{}{"session_id": id})

	return &dto.CreateVoiceSessionResponse{Id: id}, nil
}

func (s *VoiceSessionService) Machine(sessionID uuid.UUID) (*voice.Machine, bool) {
	return s.sessions.Get(sessionID)
}

func (s *VoiceSessionService) CloseSession(sessionID uuid.UUID) {
	if machine, found := s.sessions.Get(sessionID); found {
		machine.Handle(voice.Event{Type: voice.EventCancel})
	}
	s.sessions.Delete(sessionID)
}

// clientEvent is the wire shape of everything the browser sends over the
// session websocket: user commands and speech capability results alike.
type clientEvent struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Error      string `json:"error,omitempty"`
	Generation uint64 `json:"generation,omitempty"`
}

// Dispatch outcomes are produced server-side only; a tab must not be able to
// inject them.
var allowedClientEvents = map[voice.EventType]bool{
	voice.EventStartCapture:       true,
	voice.EventDispatch:           true,
	voice.EventStopPlayback:       true,
	voice.EventCancel:             true,
	voice.EventGreet:              true,
	voice.EventRecognitionStarted: true,
	voice.EventTranscript:         true,
	voice.EventRecognitionEnded:   true,
	voice.EventRecognitionError:   true,
	voice.EventPlaybackStarted:    true,
	voice.EventPlaybackEnded:      true,
	voice.EventPlaybackError:      true,
}

// HandleClientEvent feeds one browser frame into the session's state machine.
// Malformed or disallowed frames are logged and dropped; the machine itself
// rejects anything out of phase or stale.
func (s *VoiceSessionService) HandleClientEvent(sessionID uuid.UUID, payload []byte) {
	machine, found := s.sessions.Get(sessionID)
	if !found {
		s.logger.Warn("VoiceSessionService", "Event for unknown session", map[string]interface{}{"session_id": sessionID})
		return
	}

	var raw clientEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		s.logger.Warn("VoiceSessionService", "Malformed client event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	eventType := voice.EventType(raw.Type)
	if !allowedClientEvents[eventType] {
		s.logger.Warn("VoiceSessionService", "Disallowed client event", map[string]interface{}{
			"session_id": sessionID,
			"type":       raw.Type,
		})
		return
	}

	ev := voice.Event{
		Type:       eventType,
		Text:       raw.Text,
		Generation: raw.Generation,
	}
	if raw.Error != "" {
		ev.Err = errors.New(raw.Error)
	}

	if err := machine.Handle(ev); err != nil {
		s.logger.Warn("VoiceSessionService", "Event rejected", map[string]interface{}{
			"session_id": sessionID,
			"type":       raw.Type,
			"error":      err.Error(),
		})
	}
}

// assistantAnswerer adapts the assistant service to the answer dependency of
// the voice machine.
type assistantAnswerer struct {
	assistant IAssistantService
}

func (a *assistantAnswerer) Answer(ctx context.Context, question string) (string, error) {
	return a.assistant.Answer(ctx, question)
}
