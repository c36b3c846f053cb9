package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-voice-assistant-be/internal/constant"
	"ai-voice-assistant-be/internal/dto"
	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/pkg/answer"
	"ai-voice-assistant-be/pkg/retrieval"
)

// Assistant modes. In "auto" the keyword-class policy may answer without the
// model; in "llm" every non-empty query is delegated with whatever grounding
// context matched.
const (
	AssistantModeAuto = "auto"
	AssistantModeLLM  = "llm"
)

// IAssistantService is the answer path shared by typed questions (HTTP) and
// voice sessions (the machine's dispatch boundary).
type IAssistantService interface {
	Ask(ctx context.Context, question string) (*dto.AskResponse, error)

	// Answer adapts Ask to the voice machine's Answerer contract.
	Answer(ctx context.Context, question string) (string, error)
}

type assistantService struct {
	kb        IKnowledgeBaseService
	engine    *retrieval.Engine
	adapter   *answer.Adapter
	publisher IPublisherService
	mode      string
	logger    logger.ILogger
}

func NewAssistantService(
	kb IKnowledgeBaseService,
	engine *retrieval.Engine,
	adapter *answer.Adapter,
	publisher IPublisherService,
	mode string,
	log logger.ILogger,
) IAssistantService {
	if mode == "" {
		mode = AssistantModeAuto
	}
	return &assistantService{
		kb:        kb,
		engine:    engine,
		adapter:   adapter,
		publisher: publisher,
		mode:      mode,
		logger:    log,
	}
}

func (s *assistantService) Ask(ctx context.Context, question string) (*dto.AskResponse, error) {
	start := time.Now()
	categories := s.kb.GetCategories(ctx)

	// Deterministic pass first: the keyword-class policy either answers
	// outright or tells us the knowledge base is missing.
	direct := s.engine.Retrieve(question, categories)

	switch direct.Kind {
	case retrieval.KindNoData:
		res := &dto.AskResponse{Answer: constant.AnswerNoData, Mode: dto.AnswerModeFallback}
		s.publishInteraction(question, res.Mode, direct.Kind, start)
		return res, nil

	case retrieval.KindDirectAnswer:
		if s.mode != AssistantModeLLM {
			res := &dto.AskResponse{
				Answer:            direct.Answer,
				Mode:              dto.AnswerModeDirect,
				MatchedCategories: matchNames(direct.Matches),
			}
			s.publishInteraction(question, res.Mode, direct.Kind, start)
			return res, nil
		}
	}

	// Grounding pass: collect up to three categories for the model.
	grounding := s.engine.RetrieveForContext(question, categories)

	if grounding.Kind != retrieval.KindMatches && s.mode != AssistantModeLLM {
		res := &dto.AskResponse{Answer: constant.AnswerNoMatch, Mode: dto.AnswerModeFallback}
		s.publishInteraction(question, res.Mode, grounding.Kind, start)
		return res, nil
	}

	contextBlock := ""
	if grounding.Kind == retrieval.KindMatches {
		contextBlock = retrieval.BuildContext(grounding.Matches)
	}

	text, err := s.adapter.Answer(ctx, question, contextBlock)
	if err != nil {
		s.publishInteraction(question, dto.AnswerModeLLM, "DISPATCH_FAILED", start)
		return nil, err
	}

	res := &dto.AskResponse{
		Answer:            text,
		Mode:              dto.AnswerModeLLM,
		MatchedCategories: matchNames(grounding.Matches),
	}
	s.publishInteraction(question, res.Mode, grounding.Kind, start)
	return res, nil
}

// Answer is the voice machine's dispatch boundary: same pipeline, final text
// only. Errors propagate so the machine can classify and voice them.
func (s *assistantService) Answer(ctx context.Context, question string) (string, error) {
	res, err := s.Ask(ctx, question)
	if err != nil {
		return "", err
	}
	return res.Answer, nil
}

func (s *assistantService) publishInteraction(question, mode, kind string, start time.Time) {
	if s.publisher == nil {
		return
	}

	payload := dto.PublishInteractionMessage{
		Question:  question,
		Mode:      mode,
		Kind:      kind,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return
	}

	if err := s.publisher.Publish(context.Background(), payloadJson); err != nil {
		s.logger.Warn("Assistant", "Interaction publish failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func matchNames(matches []retrieval.Match) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Category.Name)
	}
	return names
}
