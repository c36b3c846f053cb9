package retrieval

import (
	"fmt"
	"strings"

	"ai-voice-assistant-be/internal/entity"
)

// maxContextMatches bounds the Context Block handed to the answer pipeline.
const maxContextMatches = 3

// FormatDirectAnswer renders a category as a fully formatted Burmese answer:
// name, description, then a bulleted service list. Pure function; a category
// with no services renders an empty service section.
func FormatDirectAnswer(category entity.Category) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("အမျိုးအစား: %s\n\n", category.Name))
	b.WriteString(category.Description)
	b.WriteString("\n\nဝန်ဆောင်မှုများ:\n")

	for _, svc := range category.Services {
		b.WriteString(fmt.Sprintf("• %s\n", svc.Title))
	}

	return b.String()
}

// BuildContext renders matched categories into the bounded textual context
// block supplied to the language model as grounding. Recomputed per query,
// never cached, capped at maxContextMatches entries.
func BuildContext(matches []Match) string {
	if len(matches) > maxContextMatches {
		matches = matches[:maxContextMatches]
	}

	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("Category: %s\n", m.Category.Name))
		b.WriteString(fmt.Sprintf("Description: %s\n", m.Category.Description))

		titles := make([]string, 0, len(m.Category.Services))
		for _, svc := range m.Category.Services {
			titles = append(titles, svc.Title)
		}
		b.WriteString(fmt.Sprintf("Services: %s", strings.Join(titles, ", ")))
	}

	return b.String()
}
