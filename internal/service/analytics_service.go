package service

import (
	"context"
	"time"

	"ripple/internal/repository"
)

// AnalyticsOverview is the admin dashboard summary.
type AnalyticsOverview struct {
	TotalUsers  int64     `json:"total_users"`
	TotalPosts  int64     `json:"total_posts"`
	NewUsers    int64     `json:"new_users"`
	NewPosts    int64     `json:"new_posts"`
	ActiveToday int64     `json:"active_today"`
	PeriodDays  int       `json:"period_days"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AnalyticsService computes admin dashboard aggregates from live counts.
type AnalyticsService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewAnalyticsService returns a new AnalyticsService.
func NewAnalyticsService(userRepo repository.UserRepository, postRepo repository.PostRepository) *AnalyticsService {
	return &AnalyticsService{userRepo: userRepo, postRepo: postRepo}
}

// Overview returns current platform totals, activity counts bucketed by the
// requested period in days, and the number of authors active in the last day.
func (s *AnalyticsService) Overview(ctx context.Context, periodDays int) (*AnalyticsOverview, error) {
	if periodDays <= 0 {
		periodDays = 7
	}
	if periodDays > 365 {
		periodDays = 365
	}

	overview := &AnalyticsOverview{PeriodDays: periodDays, GeneratedAt: time.Now()}
	since := overview.GeneratedAt.AddDate(0, 0, -periodDays)
	dayAgo := overview.GeneratedAt.Add(-24 * time.Hour)

	var err error
	if overview.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if overview.TotalPosts, err = s.postRepo.Count(ctx); err != nil {
		return nil, err
	}
	if overview.NewUsers, err = s.userRepo.CountCreatedSince(ctx, since); err != nil {
		return nil, err
	}
	if overview.NewPosts, err = s.postRepo.CountCreatedSince(ctx, since); err != nil {
		return nil, err
	}
	if overview.ActiveToday, err = s.postRepo.CountActiveAuthorsSince(ctx, dayAgo); err != nil {
		return nil, err
	}

	return overview, nil
}
