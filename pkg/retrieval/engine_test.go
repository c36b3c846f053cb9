package retrieval

import (
	"strings"
	"testing"

	"ai-voice-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func websiteCategory(id int, name string) entity.Category {
	return entity.Category{
		Id:          id,
		Slug:        "web",
		Name:        name,
		Description: "we build websites",
		Services:    []entity.Service{{Title: "Landing Page"}},
	}
}

func TestRetrieveNoData(t *testing.T) {
	e := NewEngine()

	for _, query := range []string{"", "web", "ဝက်ဘ်ဆိုက်"} {
		res := e.Retrieve(query, nil)
		assert.Equal(t, KindNoData, res.Kind, "query %q", query)

		res = e.Retrieve(query, []entity.Category{})
		assert.Equal(t, KindNoData, res.Kind, "query %q", query)
	}
}

func TestRetrieveDirectAnswer(t *testing.T) {
	e := NewEngine()
	categories := []entity.Category{websiteCategory(1, "Website Design")}

	res := e.Retrieve("web", categories)

	assert.Equal(t, KindDirectAnswer, res.Kind)
	assert.Contains(t, res.Answer, "Website Design")
	assert.Contains(t, res.Answer, "Landing Page")
	assert.Contains(t, res.Answer, "အမျိုးအစား")
}

func TestRetrieveNoMatch(t *testing.T) {
	e := NewEngine()
	categories := []entity.Category{websiteCategory(1, "Website Design")}

	res := e.Retrieve("plumbing", categories)
	assert.Equal(t, KindNoMatch, res.Kind)

	res = e.Retrieve("   ", categories)
	assert.Equal(t, KindNoMatch, res.Kind)
}

func TestRetrieveBurmeseTrigger(t *testing.T) {
	e := NewEngine()
	categories := []entity.Category{websiteCategory(1, "Website Design")}

	res := e.Retrieve("ဝက်ဘ်ဆိုက် လုပ်ပေးလား", categories)
	assert.Equal(t, KindDirectAnswer, res.Kind)
	assert.Contains(t, res.Answer, "Website Design")
}

func TestRetrieveFirstMatchWins(t *testing.T) {
	e := NewEngine()

	// Both categories satisfy the website class; declaration order decides.
	categories := []entity.Category{
		websiteCategory(7, "Website Design"),
		websiteCategory(9, "Website Hosting"),
	}

	res := e.Retrieve("website", categories)

	assert.Equal(t, KindDirectAnswer, res.Kind)
	if assert.Len(t, res.Matches, 1) {
		assert.Equal(t, 7, res.Matches[0].Category.Id)
	}
	assert.Contains(t, res.Answer, "Website Design")
	assert.NotContains(t, res.Answer, "Website Hosting")
}

func TestRetrieveEmptyServices(t *testing.T) {
	e := NewEngine()
	categories := []entity.Category{
		{
			Id:          1,
			Slug:        "design",
			Name:        "UI Design",
			Description: "design work",
		},
	}

	res := e.Retrieve("design", categories)
	assert.Equal(t, KindDirectAnswer, res.Kind)
	assert.Contains(t, res.Answer, "ဝန်ဆောင်မှုများ")
}

func TestRetrieveForContextCapsAtThree(t *testing.T) {
	e := NewEngine()

	categories := make([]entity.Category, 0, 5)
	for i := 1; i <= 5; i++ {
		categories = append(categories, entity.Category{
			Id:          i,
			Name:        "Software Team",
			Description: "custom software",
		})
	}

	res := e.RetrieveForContext("software", categories)

	assert.Equal(t, KindMatches, res.Kind)
	if assert.Len(t, res.Matches, 3) {
		// Input order preserved.
		assert.Equal(t, 1, res.Matches[0].Category.Id)
		assert.Equal(t, 2, res.Matches[1].Category.Id)
		assert.Equal(t, 3, res.Matches[2].Category.Id)
	}
}

func TestRetrieveForContextSubstring(t *testing.T) {
	e := NewEngine()
	categories := []entity.Category{
		websiteCategory(1, "Website Design"),
		{Id: 2, Name: "Mobile Apps", Description: "android and ios"},
	}

	res := e.RetrieveForContext("websites", categories)
	assert.Equal(t, KindMatches, res.Kind)
	if assert.Len(t, res.Matches, 1) {
		assert.Equal(t, 1, res.Matches[0].Category.Id)
	}

	res = e.RetrieveForContext("", categories)
	assert.Equal(t, KindNoMatch, res.Kind)

	res = e.RetrieveForContext("plumbing", categories)
	assert.Equal(t, KindNoMatch, res.Kind)
}

func TestBuildContext(t *testing.T) {
	matches := []Match{
		{Category: websiteCategory(1, "Website Design")},
		{Category: entity.Category{Name: "Mobile Apps", Description: "android"}},
	}

	block := BuildContext(matches)

	assert.Contains(t, block, "Category: Website Design")
	assert.Contains(t, block, "Services: Landing Page")
	assert.Contains(t, block, "Category: Mobile Apps")

	// Bounded at three categories even when handed more.
	many := make([]Match, 5)
	for i := range many {
		many[i] = Match{Category: websiteCategory(i, "Cat")}
	}
	bounded := BuildContext(many)
	assert.Equal(t, 3, strings.Count(bounded, "Category:"))
}
