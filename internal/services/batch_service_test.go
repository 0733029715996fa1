package services

import (
	"errors"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

func statusPtr(s models.ContentStatus) *models.ContentStatus { return &s }

func TestBatch_UpdateStatus(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	a1, _ := e.articles.Create(ctx, articleInput("Batch One"))
	a2, _ := e.articles.Create(ctx, articleInput("Batch Two"))
	before := e.store.AuditCount()

	res, err := e.batch.Execute(ctx, models.BatchRequest{
		Action: models.BatchUpdateStatus,
		Entity: models.BatchArticles,
		IDs:    []string{a1.ID, a2.ID, a1.ID},
		Data:   models.BatchData{Status: statusPtr(models.StatusPublished)},
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if res.Processed != 2 || len(res.Items) != 2 {
		t.Fatalf("processed=%d items=%d, повторный id должен схлопнуться", res.Processed, len(res.Items))
	}
	for _, id := range []string{a1.ID, a2.ID} {
		a, _ := e.articles.GetByID(ctx, id)
		if a.Status != models.StatusPublished || a.PublishedAt == nil {
			t.Errorf("%s: status=%s publishedAt=%v", id, a.Status, a.PublishedAt)
		}
	}
	if got := e.store.AuditCount() - before; got != 2 {
		t.Errorf("записей аудита %d, ожидалось 2", got)
	}
}

func TestBatch_RollsBackOnFailure(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	p1, _ := e.projects.Create(ctx, projectInput("Rollback One"))
	p3, _ := e.projects.Create(ctx, projectInput("Rollback Three"))
	auditBefore := e.store.AuditCount()

	res, err := e.batch.Execute(ctx, models.BatchRequest{
		Action: models.BatchDelete,
		Entity: models.BatchProjects,
		IDs:    []string{p1.ID, "missing", p3.ID},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получено %v", err)
	}
	if res == nil || len(res.Items) != 3 {
		t.Fatalf("ожидался отчёт по 3 элементам: %+v", res)
	}
	if !res.Items[0].RolledBack || res.Items[0].OK {
		t.Errorf("первый элемент должен быть помечен как откатанный: %+v", res.Items[0])
	}
	if res.Items[1].Error == "" {
		t.Errorf("у сбойного элемента нет ошибки: %+v", res.Items[1])
	}
	if !res.Items[2].Skipped {
		t.Errorf("третий элемент должен быть пропущен: %+v", res.Items[2])
	}
	if e.store.ProjectCount() != 2 {
		t.Errorf("проектов %d, откат должен вернуть оба", e.store.ProjectCount())
	}
	if e.store.AuditCount() != auditBefore {
		t.Error("записи аудита откатанного пакета должны исчезнуть")
	}
}

func TestBatch_AssignCategory(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	cat, err := e.taxonomy.CreateCategory(ctx, models.CategoryInput{Name: "Skincare"})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := e.articles.Create(ctx, articleInput("Category Target"))

	if _, err := e.batch.Execute(ctx, models.BatchRequest{
		Action: models.BatchAssignCategory, Entity: models.BatchArticles,
		IDs: []string{a.ID}, Data: models.BatchData{CategoryID: &cat.ID},
	}); err != nil {
		t.Fatal(err)
	}
	got, _ := e.articles.GetByID(ctx, a.ID)
	if got.Category == nil || got.Category.ID != cat.ID {
		t.Fatalf("категория не назначена: %+v", got.Category)
	}

	if _, err := e.batch.Execute(ctx, models.BatchRequest{
		Action: models.BatchAssignCategory, Entity: models.BatchArticles, IDs: []string{a.ID},
	}); err != nil {
		t.Fatal(err)
	}
	got, _ = e.articles.GetByID(ctx, a.ID)
	if got.CategoryID != nil {
		t.Errorf("categoryId=null должен снимать категорию: %v", *got.CategoryID)
	}
}

func TestBatch_InvalidRequests(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	cases := map[string]models.BatchRequest{
		"unknown action":       {Action: "ARCHIVE", Entity: models.BatchArticles, IDs: []string{"x"}},
		"unknown entity":       {Action: models.BatchDelete, Entity: "media", IDs: []string{"x"}},
		"empty ids":            {Action: models.BatchDelete, Entity: models.BatchArticles},
		"missing status":       {Action: models.BatchUpdateStatus, Entity: models.BatchArticles, IDs: []string{"x"}},
		"bad status":           {Action: models.BatchUpdateStatus, Entity: models.BatchArticles, IDs: []string{"x"}, Data: models.BatchData{Status: statusPtr("ARCHIVED")}},
		"category for youtube": {Action: models.BatchAssignCategory, Entity: models.BatchYouTube, IDs: []string{"x"}},
	}
	for name, req := range cases {
		res, err := e.batch.Execute(ctx, req)
		if !errors.Is(err, apperr.ErrInvalidRequest) || res != nil {
			t.Errorf("%s: ожидалась ErrInvalidRequest без отчёта, получено %v", name, err)
		}
	}
}
