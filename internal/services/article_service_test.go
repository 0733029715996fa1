package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

func TestArticleCreate_AggregatesValidation(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.articles.Create(asUser(e.editor), models.ArticleInput{Title: "ab", Content: "коротко"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ожидалась ValidationError, получено %v", err)
	}
	if len(ve.Fields) < 2 {
		t.Errorf("ожидались ошибки по title и content, получено %v", ve.Messages())
	}
	if e.store.ArticleCount() != 0 {
		t.Error("невалидная статья не должна сохраняться")
	}
}

func TestArticleCreate_RequiresIdentity(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.articles.Create(context.Background(), articleInput("Adaptogen Basics"))
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("ожидалась ErrUnauthorized, получено %v", err)
	}
}

func TestArticleCreate_SlugConflict(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	a, err := e.articles.Create(ctx, articleInput("Manfaat Adaptogen"))
	if err != nil {
		t.Fatalf("создание: %v", err)
	}
	if a.Slug != "manfaat-adaptogen" {
		t.Errorf("slug = %q", a.Slug)
	}
	if a.Author == nil || a.Author.ID != e.editor.ID {
		t.Errorf("автор не подставлен: %+v", a.Author)
	}

	_, err = e.articles.Create(ctx, articleInput("Manfaat  ADAPTOGEN!"))
	if !errors.Is(err, apperr.ErrSlugConflict) {
		t.Fatalf("ожидалась ErrSlugConflict, получено %v", err)
	}
	if e.store.ArticleCount() != 1 {
		t.Errorf("статей = %d, ожидалась 1", e.store.ArticleCount())
	}
}

// staleSlugs отвечает «свободен» на любой slug: так ведёт себя проверка,
// которую обогнала параллельная транзакция.
type staleSlugs struct{}

func (staleSlugs) SlugExists(context.Context, string, string) (bool, error) { return false, nil }

func TestArticleCreate_UniqueConstraintWins(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	if _, err := e.articles.Create(ctx, articleInput("Calendula Balm")); err != nil {
		t.Fatalf("создание: %v", err)
	}
	audits := e.store.AuditCount()

	racing := NewArticleService(e.repos.Articles, e.repos.Tags, e.repos.Tx,
		NewSlugService(staleSlugs{}, staleSlugs{}), e.audit)
	_, err := racing.Create(ctx, articleInput("Calendula Balm"))
	if !errors.Is(err, apperr.ErrSlugConflict) {
		t.Fatalf("ожидалась ErrSlugConflict от ограничения уникальности, получено %v", err)
	}
	if n := e.store.ArticleCount(); n != 1 {
		t.Errorf("статей = %d, ожидалась 1", n)
	}
	if n := e.store.AuditCount(); n != audits {
		t.Errorf("аудит после отката: %d, ожидалось %d", n, audits)
	}
}

func TestArticleCreate_ConcurrentSameTitle(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.articles.Create(ctx, articleInput("Herbal Serum Launch"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, apperr.ErrSlugConflict):
			t.Errorf("неожиданная ошибка: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("успешных созданий %d, ожидалось ровно 1", ok)
	}
}

func TestArticleUpdate_PublishedAtSetOnce(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	a, err := e.articles.Create(ctx, articleInput("Green Tea Toner"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != models.StatusDraft || a.PublishedAt != nil {
		t.Fatalf("новая статья должна быть черновиком без publishedAt: %s %v", a.Status, a.PublishedAt)
	}

	in := articleInput("Green Tea Toner")
	in.Status = models.StatusPublished
	pub, err := e.articles.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if pub.PublishedAt == nil {
		t.Fatal("publishedAt не выставлен при публикации")
	}
	first := *pub.PublishedAt

	in.Status = models.StatusDraft
	if _, err := e.articles.Update(ctx, a.ID, in); err != nil {
		t.Fatal(err)
	}
	in.Status = models.StatusPublished
	again, err := e.articles.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Equal(first) {
		t.Errorf("publishedAt изменился: было %v, стало %v", first, again.PublishedAt)
	}
}

func TestArticleUpdate_EmptyStatusKeepsOld(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	in := articleInput("Rosehip Oil Guide")
	in.Status = models.StatusInReview
	a, err := e.articles.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	in.Status = ""
	got, err := e.articles.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusInReview {
		t.Errorf("status = %s, ожидался IN_REVIEW", got.Status)
	}
}

func TestArticleUpdate_ReplacesTags(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	t1, err := e.taxonomy.CreateTag(ctx, models.TagInput{Name: "aloe"})
	if err != nil {
		t.Fatal(err)
	}
	t2, err := e.taxonomy.CreateTag(ctx, models.TagInput{Name: "calendula"})
	if err != nil {
		t.Fatal(err)
	}

	in := articleInput("Aloe and Calendula")
	in.TagIDs = []string{t1.ID}
	a, err := e.articles.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Tags) != 1 || a.Tags[0].ID != t1.ID {
		t.Fatalf("теги после создания: %+v", a.Tags)
	}

	in.TagIDs = []string{t2.ID}
	got, err := e.articles.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != t2.ID {
		t.Fatalf("теги не заменены: %+v", got.Tags)
	}

	in.TagIDs = nil
	got, err = e.articles.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Tags) != 1 {
		t.Errorf("tagIds=nil не должен трогать теги: %+v", got.Tags)
	}

	in.TagIDs = []string{}
	got, err = e.articles.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("пустой tagIds должен снять теги: %+v", got.Tags)
	}
}

func TestArticleCreate_UnknownTag(t *testing.T) {
	e := newTestEnv(t)

	in := articleInput("Unknown Tag Article")
	in.TagIDs = []string{"missing"}
	_, err := e.articles.Create(asUser(e.editor), in)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ожидалась ValidationError, получено %v", err)
	}
}

func TestArticle_AuditTrail(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	a, err := e.articles.Create(ctx, articleInput("Audit Trail Article"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.articles.Update(ctx, a.ID, articleInput("Audit Trail Article v2")); err != nil {
		t.Fatal(err)
	}
	if err := e.articles.Delete(ctx, a.ID); err != nil {
		t.Fatal(err)
	}

	entries := e.store.AuditEntries()
	if len(entries) != 3 {
		t.Fatalf("записей аудита %d, ожидалось 3", len(entries))
	}
	want := []models.AuditAction{models.AuditCreate, models.AuditUpdate, models.AuditDelete}
	for i, l := range entries {
		if l.Action != want[i] || l.Entity != models.EntityArticle || l.EntityID != a.ID {
			t.Errorf("запись %d: %s %s %s", i, l.Action, l.Entity, l.EntityID)
		}
		if l.UserID == nil || *l.UserID != e.editor.ID {
			t.Errorf("запись %d без пользователя", i)
		}
	}
	if entries[0].OldData != nil || entries[0].NewData == nil {
		t.Error("CREATE: ожидались только newData")
	}
	if entries[1].OldData == nil || entries[1].NewData == nil {
		t.Error("UPDATE: ожидались oldData и newData")
	}
	if entries[2].OldData == nil || entries[2].NewData != nil {
		t.Error("DELETE: ожидались только oldData")
	}
}

func TestArticleGetPublishedBySlug(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	draft, err := e.articles.Create(ctx, articleInput("Draft Only Article"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.articles.GetPublishedBySlug(context.Background(), draft.Slug); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("черновик не должен быть доступен по slug: %v", err)
	}

	in := articleInput("Published Article")
	in.Status = models.StatusPublished
	pub, err := e.articles.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		got, err := e.articles.GetPublishedBySlug(context.Background(), pub.Slug)
		if err != nil {
			t.Fatal(err)
		}
		if got.ViewCount != int64(i) {
			t.Errorf("viewCount = %d, ожидалось %d", got.ViewCount, i)
		}
	}
}

func TestArticlePreview_Sanitizes(t *testing.T) {
	e := newTestEnv(t)

	out := e.articles.PreviewHTML(`<p>ok</p><script>alert(1)</script><img src="/a.jpg" onerror="x()">`)
	if containsAny(out, "<script", "onerror") {
		t.Errorf("опасный HTML не вычищен: %s", out)
	}
	if !containsAny(out, "<p>ok</p>") {
		t.Errorf("безопасный HTML потерян: %s", out)
	}
}

func TestArticleList_Pagination(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	for i := 0; i < 15; i++ {
		if _, err := e.articles.Create(ctx, articleInput("Paged Article "+string(rune('a'+i)))); err != nil {
			t.Fatal(err)
		}
	}
	res, err := e.articles.List(ctx, models.ArticleFilter{}, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 5 {
		t.Errorf("на второй странице %d строк, ожидалось 5", len(res.Items))
	}
	if res.Pagination.Total != 15 || res.Pagination.Pages != 2 {
		t.Errorf("pagination = %+v", res.Pagination)
	}
}
