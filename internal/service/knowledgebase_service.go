package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-voice-assistant-be/internal/entity"
	"ai-voice-assistant-be/internal/mapper"
	"ai-voice-assistant-be/internal/model"
	"ai-voice-assistant-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// IKnowledgeBaseService owns the remote category set for the duration of a
// session. Consumers receive a read-only slice; a failed or empty fetch
// yields an empty slice (retrieval then resolves to NO_DATA), never an error.
type IKnowledgeBaseService interface {
	GetCategories(ctx context.Context) []entity.Category
	Invalidate()
}

const categoriesCacheKey = "categories"

type knowledgeBaseService struct {
	url            string
	acceptLanguage string
	client         *http.Client
	cache          *cache.Cache
	mapper         *mapper.CategoryMapper
	logger         logger.ILogger
}

func NewKnowledgeBaseService(url, acceptLanguage string, cacheTTL time.Duration, log logger.ILogger) IKnowledgeBaseService {
	return &knowledgeBaseService{
		url:            url,
		acceptLanguage: acceptLanguage,
		client:         &http.Client{Timeout: 15 * time.Second},
		cache:          cache.New(cacheTTL, 10*time.Minute),
		mapper:         mapper.NewCategoryMapper(),
		logger:         log,
	}
}

func (s *knowledgeBaseService) GetCategories(ctx context.Context) []entity.Category {
	if cached, found := s.cache.Get(categoriesCacheKey); found {
		return cached.([]entity.Category)
	}

	categories, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("KnowledgeBase", "Category fetch failed", map[string]interface{}{
			"url":   s.url,
			"error": err.Error(),
		})
		return []entity.Category{}
	}

	s.cache.Set(categoriesCacheKey, categories, cache.DefaultExpiration)
	s.logger.Info("KnowledgeBase", "Categories refreshed", map[string]interface{}{
		"count": len(categories),
	})
	return categories
}

// Invalidate forces a refetch on the next read (used at session start).
func (s *knowledgeBaseService) Invalidate() {
	s.cache.Delete(categoriesCacheKey)
}

func (s *knowledgeBaseService) fetch(ctx context.Context) ([]entity.Category, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", s.acceptLanguage)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, &fetchStatusError{status: res.StatusCode}
	}

	var wire []model.Category
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, err
	}

	return s.mapper.ToEntities(wire), nil
}

type fetchStatusError struct {
	status int
}

func (e *fetchStatusError) Error() string {
	return fmt.Sprintf("knowledge base returned status %d", e.status)
}
