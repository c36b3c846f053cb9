package answer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ai-voice-assistant-be/internal/constant"
	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/pkg/llm"
)

// ErrRegionRestricted marks a provider rejection tied to the caller's
// location. It is surfaced to the user with a distinct message and never
// retried automatically.
var ErrRegionRestricted = errors.New("answer pipeline: region restricted")

const defaultTimeout = 30 * time.Second

// Adapter wraps the language-model boundary. It applies a bounded timeout,
// makes exactly one attempt per call and classifies provider failures; all
// retry decisions belong to the user.
type Adapter struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewAdapter(provider llm.LLMProvider, timeout time.Duration, log logger.ILogger) *Adapter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{
		provider: provider,
		timeout:  timeout,
		logger:   log,
	}
}

// Answer sends the question, grounded on contextBlock when non-empty, and
// returns the model's text. A 2xx response with no usable text resolves to
// the fixed empty-answer message rather than an error.
func (a *Adapter) Answer(ctx context.Context, question, contextBlock string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := NewPromptBuilder(question, contextBlock).Build()

	start := time.Now()
	text, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		if isRegionRestricted(err) {
			a.logger.Warn("AnswerPipeline", "Provider rejected caller location", map[string]interface{}{
				"error": err.Error(),
			})
			return "", ErrRegionRestricted
		}
		a.logger.Error("AnswerPipeline", "Model call failed", map[string]interface{}{
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return constant.AnswerModelEmpty, nil
	}

	return text, nil
}

// isRegionRestricted matches a 403 whose body carries a location or
// precondition failure class.
func isRegionRestricted(err error) bool {
	var statusErr *llm.StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	if statusErr.StatusCode != http.StatusForbidden {
		return false
	}
	body := strings.ToLower(statusErr.Body)
	return strings.Contains(body, "failed_precondition") || strings.Contains(body, "location")
}
