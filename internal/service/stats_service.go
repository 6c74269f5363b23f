package service

import (
	"context"
	"log"

	"formforge/internal/cache"
	"formforge/internal/repository"
)

// Points per created form and per received response on the activity score
const (
	statsPointsPerForm     = 10
	statsPointsPerResponse = 2
)

// StatsService computes creator dashboard stats
type StatsService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	statsCache   cache.StatsCache
}

// NewStatsService creates a new stats service
func NewStatsService(
	formRepo repository.FormRepo,
	responseRepo repository.ResponseRepo,
	statsCache cache.StatsCache,
) *StatsService {
	return &StatsService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		statsCache:   statsCache,
	}
}

// GetUserStats returns form count, responses received across those forms,
// and the derived activity score
func (s *StatsService) GetUserStats(ctx context.Context, userID string) (*cache.UserStats, error) {
	if cached, err := s.statsCache.Get(ctx, userID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("stats cache read failed for %s: %v", userID, err)
	}

	formCount, err := s.formRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	forms, err := s.formRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	formIDs := make([]string, 0, len(forms))
	for _, f := range forms {
		formIDs = append(formIDs, f.ID)
	}

	responseCount, err := s.responseRepo.CountByFormIDs(ctx, formIDs)
	if err != nil {
		return nil, err
	}

	stats := &cache.UserStats{
		FormCount:              formCount,
		TotalResponsesReceived: responseCount,
		Score:                  formCount*statsPointsPerForm + responseCount*statsPointsPerResponse,
	}
	if err := s.statsCache.Set(ctx, userID, stats); err != nil {
		log.Printf("stats cache write failed for %s: %v", userID, err)
	}
	return stats, nil
}
