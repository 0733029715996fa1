package services

import (
	"context"
	"math"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"

	"go.uber.org/zap"
)

const (
	dashboardTopN         = 5
	analyticsTopN         = 10
	DefaultAnalyticsDays  = 30
	MaxAnalyticsDays      = 365
	analyticsRecentAudits = 10
)

// DashboardService только читает: счётчики, топы и группировки.
type DashboardService struct {
	stats repository.StatsRepo
	audit repository.AuditRepo
	now   clock
}

func NewDashboardService(stats repository.StatsRepo, audit repository.AuditRepo) *DashboardService {
	return &DashboardService{stats: stats, audit: audit, now: systemClock}
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	log := logger.WithCtx(ctx)

	overview, err := s.stats.Overview(ctx)
	if err != nil {
		log.Error("dashboard: ошибка подсчёта сводки", zap.Error(err))
		return nil, err
	}
	overview.PublishedPct = percent(overview.PublishedArticles, overview.TotalArticles)

	recent, err := s.stats.RecentArticles(ctx, dashboardTopN)
	if err != nil {
		return nil, err
	}
	popular, err := s.stats.PopularArticles(ctx, nil, dashboardTopN)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.stats.ArticlesByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.stats.ArticlesByCategory(ctx, dashboardTopN)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Overview:           *overview,
		RecentArticles:     recent,
		PopularArticles:    popular,
		ContentByStatus:    fillStatuses(byStatus),
		ArticlesByCategory: byCategory,
	}, nil
}

// Analytics считает показатели за последние days дней (по умолчанию 30).
func (s *DashboardService) Analytics(ctx context.Context, days int) (*models.Analytics, error) {
	if days == 0 {
		days = DefaultAnalyticsDays
	}
	if days < 1 || days > MaxAnalyticsDays {
		return nil, apperr.Invalid("period должен быть от 1 до %d дней", MaxAnalyticsDays)
	}
	since := s.now().AddDate(0, 0, -days)

	trends, err := s.stats.ArticlesByStatus(ctx, &since)
	if err != nil {
		return nil, err
	}
	top, err := s.stats.PopularArticles(ctx, &since, analyticsTopN)
	if err != nil {
		return nil, err
	}
	categories, err := s.stats.CategoryActivity(ctx, since)
	if err != nil {
		return nil, err
	}
	users, err := s.stats.UserActivity(ctx, since)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.audit.List(ctx, models.AuditFilter{Since: &since}, models.NewPage(1, analyticsRecentAudits, analyticsRecentAudits))
	if err != nil {
		logger.WithCtx(ctx).Error("dashboard: ошибка чтения аудита", zap.Error(err))
		return nil, err
	}
	if recent == nil {
		recent = []models.AuditLog{}
	}

	return &models.Analytics{
		PeriodDays:     days,
		Since:          since,
		ContentTrends:  fillStatuses(trends),
		TopArticles:    top,
		CategoryStats:  categories,
		UserActivity:   users,
		RecentActivity: recent,
	}, nil
}

// fillStatuses возвращает все три статуса в фиксированном порядке, отсутствующие с нулём.
func fillStatuses(in []models.StatusCount) []models.StatusCount {
	counts := make(map[models.ContentStatus]int, len(in))
	for _, c := range in {
		counts[c.Status] = c.Count
	}
	out := make([]models.StatusCount, 0, 3)
	for _, st := range []models.ContentStatus{models.StatusDraft, models.StatusInReview, models.StatusPublished} {
		out = append(out, models.StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}
