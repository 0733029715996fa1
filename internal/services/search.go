package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"

	"go.uber.org/zap"
)

type SearchService struct {
	articles repository.ArticleRepo
	projects repository.ProjectRepo
	videos   repository.YouTubeRepo
}

func NewSearchService(articles repository.ArticleRepo, projects repository.ProjectRepo, videos repository.YouTubeRepo) *SearchService {
	return &SearchService{articles: articles, projects: projects, videos: videos}
}

// Search ищет подстроку независимо по статьям, проектам и видео. Запрос
// короче двух символов даёт пустой результат, а не ошибку.
func (s *SearchService) Search(ctx context.Context, q string, typ models.SearchType, limit int) (*models.SearchResult, error) {
	q = strings.TrimSpace(q)
	if typ == "" {
		typ = models.SearchAll
	}
	switch typ {
	case models.SearchAll, models.SearchArticles, models.SearchProjects, models.SearchVideos:
	default:
		return nil, apperr.Invalid("неизвестный тип поиска %q", typ)
	}
	if limit <= 0 {
		limit = models.SearchDefaultLimit
	}
	if limit > models.SearchMaxLimit {
		limit = models.SearchMaxLimit
	}

	res := &models.SearchResult{
		Query:    q,
		Type:     typ,
		Articles: []models.Article{},
		Projects: []models.Project{},
		Videos:   []models.YouTubeContent{},
	}
	if utf8.RuneCountInString(q) < models.SearchMinQuery {
		return res, nil
	}

	log := logger.WithCtx(ctx)
	var err error
	if typ == models.SearchAll || typ == models.SearchArticles {
		if res.Articles, err = s.articles.Search(ctx, q, limit); err != nil {
			log.Error("search: ошибка поиска статей", zap.Error(err))
			return nil, err
		}
	}
	if typ == models.SearchAll || typ == models.SearchProjects {
		if res.Projects, err = s.projects.Search(ctx, q, limit); err != nil {
			log.Error("search: ошибка поиска проектов", zap.Error(err))
			return nil, err
		}
	}
	if typ == models.SearchAll || typ == models.SearchVideos {
		if res.Videos, err = s.videos.Search(ctx, q, limit); err != nil {
			log.Error("search: ошибка поиска видео", zap.Error(err))
			return nil, err
		}
	}
	res.Total = len(res.Articles) + len(res.Projects) + len(res.Videos)

	log.Debug("search: выполнен поиск", zap.String("q", q), zap.String("type", string(typ)), zap.Int("total", res.Total))
	return res, nil
}
