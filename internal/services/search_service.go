package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"stayBack/internal/models"
	"stayBack/internal/repositories"
	"stayBack/internal/search"
)

const (
	autocompleteCacheKey = "properties:autocomplete"
	autocompleteCacheTTL = time.Minute
)

// SearchService runs full-text queries against the hosted index and loads the
// matching rows from the database, preserving relevance order.
type SearchService struct {
	Search       *search.Client
	PropertyRepo *repositories.PropertyRepository
	RDB          *redis.Client
	ErrorLog     *log.Logger
}

func (s *SearchService) SearchProperties(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	if s.Search == nil {
		return models.SearchResponse{}, models.ErrSearchUnavailable
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	ids, total, err := s.Search.SearchProperties(ctx, req)
	if err != nil {
		return models.SearchResponse{}, err
	}

	properties, err := s.PropertyRepo.GetPropertiesByIDs(ctx, ids)
	if err != nil {
		return models.SearchResponse{}, err
	}

	return models.SearchResponse{
		Properties: properties,
		Total:      total,
		Page:       req.Page,
		PerPage:    search.PerPage,
	}, nil
}

func (s *SearchService) Autocomplete(ctx context.Context) ([]string, error) {
	if s.Search == nil {
		return nil, models.ErrSearchUnavailable
	}
	if s.RDB != nil {
		cached, err := s.RDB.Get(ctx, autocompleteCacheKey).Bytes()
		if err == nil {
			var results []string
			if err := json.Unmarshal(cached, &results); err == nil {
				return results, nil
			}
		} else if err != redis.Nil {
			s.ErrorLog.Printf("redis: get autocomplete: %v", err)
		}
	}

	results, err := s.Search.Autocomplete(ctx)
	if err != nil {
		return nil, err
	}

	if s.RDB != nil {
		if payload, err := json.Marshal(results); err == nil {
			if err := s.RDB.Set(ctx, autocompleteCacheKey, payload, autocompleteCacheTTL).Err(); err != nil {
				s.ErrorLog.Printf("redis: set autocomplete: %v", err)
			}
		}
	}
	return results, nil
}
