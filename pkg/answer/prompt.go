package answer

import (
	"strings"

	"ai-voice-assistant-be/internal/constant"
)

// PromptBuilder assembles the grounding prompt sent to the language model.
type PromptBuilder struct {
	question     string
	contextBlock string
}

func NewPromptBuilder(question, contextBlock string) *PromptBuilder {
	return &PromptBuilder{
		question:     question,
		contextBlock: contextBlock,
	}
}

// Build renders the system instruction, the bounded context block (when one
// matched) and the user question into a single prompt.
func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	b.writeInstruction(&prompt)
	b.writeContext(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *PromptBuilder) writeInstruction(prompt *strings.Builder) {
	if b.contextBlock == "" {
		prompt.WriteString(constant.AnswerSystemInstructionNoContext)
	} else {
		prompt.WriteString(constant.AnswerSystemInstruction)
	}
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writeContext(prompt *strings.Builder) {
	if b.contextBlock == "" {
		return
	}
	prompt.WriteString("CONTEXT:\n")
	prompt.WriteString(b.contextBlock)
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("USER QUESTION: ")
	prompt.WriteString(b.question)
}
