package mapper

import (
	"strings"

	"ai-voice-assistant-be/internal/entity"
	"ai-voice-assistant-be/internal/model"
)

type CategoryMapper struct{}

func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

// ToEntity converts one wire category. Returns nil for malformed entries: a
// category without a name can never match or be rendered, so it is rejected
// at this boundary rather than handled downstream. Nameless services are
// dropped; an empty service list is valid.
func (m *CategoryMapper) ToEntity(c *model.Category) *entity.Category {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return nil
	}

	services := make([]entity.Service, 0, len(c.Services))
	for _, svc := range c.Services {
		if strings.TrimSpace(svc.Title) == "" {
			continue
		}
		services = append(services, entity.Service{Title: svc.Title})
	}

	return &entity.Category{
		Id:          c.Id,
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		Services:    services,
	}
}

// ToEntities converts the fetched set, preserving input order and skipping
// rejected entries.
func (m *CategoryMapper) ToEntities(categories []model.Category) []entity.Category {
	out := make([]entity.Category, 0, len(categories))
	for i := range categories {
		if e := m.ToEntity(&categories[i]); e != nil {
			out = append(out, *e)
		}
	}
	return out
}
