package mapper

import (
	"testing"

	"ai-voice-assistant-be/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCategoryMapperRejectsNameless(t *testing.T) {
	m := NewCategoryMapper()

	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToEntity(&model.Category{Id: 1, Slug: "web"}))
	assert.Nil(t, m.ToEntity(&model.Category{Id: 2, Name: "   "}))
}

func TestCategoryMapperDropsEmptyServiceTitles(t *testing.T) {
	m := NewCategoryMapper()

	got := m.ToEntity(&model.Category{
		Id:   1,
		Name: "Website Design",
		Services: []model.Service{
			{Title: "Landing Page"},
			{Title: "  "},
			{Title: "E-Commerce"},
		},
	})

	assert.NotNil(t, got)
	assert.Len(t, got.Services, 2)
	assert.Equal(t, "Landing Page", got.Services[0].Title)
	assert.Equal(t, "E-Commerce", got.Services[1].Title)
}

func TestCategoryMapperPreservesOrder(t *testing.T) {
	m := NewCategoryMapper()

	got := m.ToEntities([]model.Category{
		{Id: 3, Name: "C"},
		{Id: 1, Name: ""},
		{Id: 2, Name: "B"},
	})

	assert.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Id)
	assert.Equal(t, 2, got[1].Id)
}
