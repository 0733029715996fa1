package services

import (
	"context"
	"errors"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/mocks"
	"formulator/internal/models"
)

func TestCategory_DuplicateAndDefaults(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	c, err := e.taxonomy.CreateCategory(ctx, models.CategoryInput{Name: "Herbal Care"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Slug != "herbal-care" || c.Color != models.DefaultCategoryColor {
		t.Errorf("slug=%s color=%s", c.Slug, c.Color)
	}

	if _, err := e.taxonomy.CreateCategory(ctx, models.CategoryInput{Name: "herbal care!"}); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("дубликат slug: ожидалась ErrAlreadyExists, получено %v", err)
	}
	if _, err := e.taxonomy.CreateCategory(ctx, models.CategoryInput{Name: "Bad Color", Color: "green"}); err == nil {
		t.Error("цвет не в hex должен отвергаться")
	}
}

func TestCategory_DeleteDetachesContent(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	c, err := e.taxonomy.CreateCategory(ctx, models.CategoryInput{Name: "Temporary"})
	if err != nil {
		t.Fatal(err)
	}
	in := articleInput("Attached Article")
	in.CategoryID = &c.ID
	a, err := e.articles.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.taxonomy.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	got, err := e.articles.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CategoryID != nil || got.Category != nil {
		t.Error("статья должна остаться без категории")
	}
}

func TestTag_CreateDuplicate(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	if _, err := e.taxonomy.CreateTag(ctx, models.TagInput{Name: "Vitamin C"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.taxonomy.CreateTag(ctx, models.TagInput{Name: "vitamin-c"}); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("ожидалась ErrAlreadyExists, получено %v", err)
	}
}

func TestYouTube_CreateExtractsVideo(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	v, err := e.videos.Create(ctx, models.YouTubeInput{
		Title: "Toner routine",
		URL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10",
		Tags:  []string{" Skincare ", "skincare", "DIY"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.VideoID != "dQw4w9WgXcQ" || v.Thumbnail == nil {
		t.Errorf("videoId=%s thumbnail=%v", v.VideoID, v.Thumbnail)
	}
	if v.Status != models.StatusPublished || v.PublishedAt == nil {
		t.Errorf("по умолчанию видео публикуется: %s %v", v.Status, v.PublishedAt)
	}
	if len(v.Tags) != 2 {
		t.Errorf("теги должны нормализоваться: %v", v.Tags)
	}

	_, err = e.videos.Create(ctx, models.YouTubeInput{Title: "Not youtube", URL: "https://vimeo.com/12345"})
	if !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("ожидалась ErrInvalidRequest, получено %v", err)
	}
}

func TestProject_CreateAndSlugLookup(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	in := projectInput("Spa Formula Project")
	in.Status = models.StatusPublished
	in.Gallery = []string{" /a.jpg ", "", "/b.jpg"}
	p, err := e.projects.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Gallery) != 2 {
		t.Errorf("gallery = %v", p.Gallery)
	}

	got, err := e.projects.GetPublishedBySlug(context.Background(), "spa-formula-project")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID || got.ViewCount != 1 {
		t.Errorf("got %s views=%d", got.ID, got.ViewCount)
	}

	if _, err := e.projects.Create(ctx, projectInput("Spa Formula Project")); !errors.Is(err, apperr.ErrSlugConflict) {
		t.Errorf("ожидалась ErrSlugConflict, получено %v", err)
	}
}

type fakeStorage struct {
	removed []string
	err     error
}

func (f *fakeStorage) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return f.err
}

func (f *fakeStorage) Name() string { return "fake" }

func TestMedia_DeleteRemovesFileBestEffort(t *testing.T) {
	store := mocks.NewStore()
	r := store.Repos()
	fs := &fakeStorage{err: errors.New("диск недоступен")}
	svc := NewMediaService(r.Media, fs, r.Tx, NewAuditService(r.Audit))
	editor := store.AddUser(models.User{ID: "u1", Email: "e@example.com", Name: "Ред", Role: models.RoleEditor})
	ctx := asUser(editor)

	m, err := svc.Create(ctx, models.MediaInput{Filename: "leaf.jpg", URL: "/uploads/leaf.jpg", Size: 1024})
	if err != nil {
		t.Fatal(err)
	}
	if m.UploadedBy == nil || *m.UploadedBy != editor.ID {
		t.Errorf("uploadedBy = %v", m.UploadedBy)
	}

	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("ошибка хранилища не должна мешать удалению: %v", err)
	}
	if len(fs.removed) != 1 || fs.removed[0] != "/uploads/leaf.jpg" {
		t.Errorf("removed = %v", fs.removed)
	}
	if _, err := svc.Get(ctx, m.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("запись должна быть удалена: %v", err)
	}
}

func TestSettings_UpsertAudit(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.admin)

	got, err := e.settings.GetCompany(ctx)
	if err != nil || got != nil {
		t.Fatalf("пустой профиль: %v %v", got, err)
	}

	in := models.CompanyProfileInput{Name: "Formulator", SocialMedia: models.SocialLinks{"instagram": "https://instagram.com/formulator"}}
	if _, err := e.settings.SaveCompany(ctx, in); err != nil {
		t.Fatal(err)
	}
	in.Name = "Formulator Lab"
	saved, err := e.settings.SaveCompany(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Name != "Formulator Lab" || saved.SocialMedia["instagram"] == "" {
		t.Errorf("профиль = %+v", saved)
	}

	entries := e.store.AuditEntries()
	if len(entries) != 2 || entries[0].Action != models.AuditCreate || entries[1].Action != models.AuditUpdate {
		t.Errorf("аудит: %+v", entries)
	}

	if _, err := e.settings.SaveSeo(ctx, models.SeoSettingInput{}); err == nil {
		t.Error("siteName обязателен")
	}
}
