package dto

import (
	"github.com/google/uuid"
)

// Answer modes reported to the client.
const (
	AnswerModeDirect   = "direct"   // deterministic keyword-class answer
	AnswerModeLLM      = "llm"      // generative answer grounded on context
	AnswerModeFallback = "fallback" // fixed no-data / no-match message
)

type AskRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type AskResponse struct {
	Answer            string   `json:"answer"`
	Mode              string   `json:"mode"`
	MatchedCategories []string `json:"matched_categories,omitempty"`
}

type CreateVoiceSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

// PublishInteractionMessage is the payload posted to the in-process event bus
// for every answered question.
type PublishInteractionMessage struct {
	Question  string `json:"question"`
	Mode      string `json:"mode"`
	Kind      string `json:"kind"` // retrieval result kind
	ElapsedMs int64  `json:"elapsed_ms"`
}
