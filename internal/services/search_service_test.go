package services

import (
	"context"
	"errors"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

func TestSearch_ShortQueryIsEmpty(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.articles.Create(asUser(e.editor), articleInput("A Searchable Article")); err != nil {
		t.Fatal(err)
	}

	res, err := e.search.Search(context.Background(), "a", "", 0)
	if err != nil {
		t.Fatalf("короткий запрос не должен давать ошибку: %v", err)
	}
	if res.Total != 0 || len(res.Articles) != 0 || res.Articles == nil {
		t.Errorf("ожидался пустой результат: %+v", res)
	}
}

func TestSearch_AcrossEntities(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	if _, err := e.articles.Create(ctx, articleInput("Chamomile Cream")); err != nil {
		t.Fatal(err)
	}
	if _, err := e.projects.Create(ctx, projectInput("Chamomile Line")); err != nil {
		t.Fatal(err)
	}
	if _, err := e.videos.Create(ctx, models.YouTubeInput{Title: "Chamomile review", URL: "https://youtu.be/abc123XYZ"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.articles.Create(ctx, articleInput("Unrelated Lavender")); err != nil {
		t.Fatal(err)
	}

	res, err := e.search.Search(ctx, "chamomile", models.SearchAll, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Articles) != 1 || len(res.Projects) != 1 || len(res.Videos) != 1 || res.Total != 3 {
		t.Errorf("результат: articles=%d projects=%d videos=%d total=%d",
			len(res.Articles), len(res.Projects), len(res.Videos), res.Total)
	}

	only, err := e.search.Search(ctx, "chamomile", models.SearchVideos, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(only.Articles) != 0 || len(only.Videos) != 1 {
		t.Errorf("фильтр по типу не сработал: %+v", only)
	}

	if _, err := e.search.Search(ctx, "chamomile", "podcasts", 0); !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("неизвестный тип: ожидалась ErrInvalidRequest, получено %v", err)
	}
}
