package retrieval

import (
	"strings"

	"ai-voice-assistant-be/internal/entity"
	"ai-voice-assistant-be/pkg/textnorm"
)

// Engine maps a free-text query to a subset of the knowledge base. It carries
// no state of its own; the category set is owned by the caller and read-only.
//
// Two intentionally different policies are exposed:
//
//   - Retrieve: first-match keyword-class policy, producing a deterministic
//     fully formatted answer with no model involvement.
//   - RetrieveForContext: multi-match substring policy, producing up to three
//     categories for a generative grounding context.
//
// They serve different call sites and must not be collapsed into one.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Retrieve applies the keyword-class policy. Iteration order over categories,
// then class declaration order, decides the winner; once a class fires for a
// category no further categories are considered. Precision-biased: an empty
// or unmatched query yields NO_MATCH, never an error.
func (e *Engine) Retrieve(query string, categories []entity.Category) Result {
	if len(categories) == 0 {
		return Result{Kind: KindNoData}
	}

	q := textnorm.Normalize(query)
	if q == "" {
		return Result{Kind: KindNoMatch}
	}

	for _, category := range categories {
		keywords := categoryKeywordString(category)

		for _, class := range topicClasses {
			if containsAny(q, class.Triggers) && containsAny(keywords, class.Keywords) {
				return Result{
					Kind:   KindDirectAnswer,
					Answer: FormatDirectAnswer(category),
					Matches: []Match{
						{Category: category, Score: 1},
					},
				}
			}
		}
	}

	return Result{Kind: KindNoMatch}
}

// RetrieveForContext applies the substring policy: a category matches when
// the normalized query is a non-empty substring of its normalized name,
// description, or any service title. All matches are collected in input
// order and truncated to maxContextMatches.
func (e *Engine) RetrieveForContext(query string, categories []entity.Category) Result {
	if len(categories) == 0 {
		return Result{Kind: KindNoData}
	}

	q := textnorm.Normalize(query)
	if q == "" {
		return Result{Kind: KindNoMatch}
	}

	matches := make([]Match, 0, maxContextMatches)

	for _, category := range categories {
		matched, total := matchedFields(q, category)
		if matched == 0 {
			continue
		}

		matches = append(matches, Match{
			Category: category,
			Score:    float64(matched) / float64(total),
		})
		if len(matches) == maxContextMatches {
			break
		}
	}

	if len(matches) == 0 {
		return Result{Kind: KindNoMatch}
	}

	return Result{Kind: KindMatches, Matches: matches}
}

// categoryKeywordString concatenates the normalized slug, name, description
// and service titles into the per-category keyword string the class policy
// matches against.
func categoryKeywordString(category entity.Category) string {
	parts := []string{
		textnorm.Normalize(category.Slug),
		textnorm.Normalize(category.Name),
		textnorm.Normalize(category.Description),
	}
	for _, svc := range category.Services {
		parts = append(parts, textnorm.Normalize(svc.Title))
	}
	return strings.Join(parts, " ")
}

func matchedFields(q string, category entity.Category) (matched, total int) {
	fields := []string{
		textnorm.Normalize(category.Name),
		textnorm.Normalize(category.Description),
	}
	for _, svc := range category.Services {
		fields = append(fields, textnorm.Normalize(svc.Title))
	}

	for _, field := range fields {
		if strings.Contains(field, q) {
			matched++
		}
	}
	return matched, len(fields)
}

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
