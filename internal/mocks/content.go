package mocks

import (
	"context"
	"sort"
	"strings"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// checkRefs повторяет внешние ключи author_id и category_id. Вызывать под s.mu.
func (s *Store) checkRefs(authorID string, categoryID *string) error {
	if _, ok := s.data.users[authorID]; !ok {
		return apperr.Invalid("автор %q не существует", authorID)
	}
	if categoryID != nil {
		if _, ok := s.data.categories[*categoryID]; !ok {
			return apperr.Invalid("категория %q не существует", *categoryID)
		}
	}
	return nil
}

func (s *Store) authorRef(id string) *models.UserRef {
	u, ok := s.data.users[id]
	if !ok {
		return nil
	}
	return &models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *Store) categoryRef(id *string) *models.CategoryRef {
	if id == nil {
		return nil
	}
	c, ok := s.data.categories[*id]
	if !ok {
		return nil
	}
	return &models.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug, Color: c.Color}
}

// ----- Articles -----

type articleRepo struct{ s *Store }

func (r *articleRepo) hydrate(a models.Article) models.Article {
	a.Author = r.s.authorRef(a.AuthorID)
	a.Category = r.s.categoryRef(a.CategoryID)
	a.Tags = []models.TagRef{}
	for _, id := range r.s.data.articleTags[a.ID] {
		if t, ok := r.s.data.tags[id]; ok {
			a.Tags = append(a.Tags, models.TagRef{ID: t.ID, Name: t.Name, Slug: t.Slug})
		}
	}
	sort.Slice(a.Tags, func(i, j int) bool { return a.Tags[i].Name < a.Tags[j].Name })
	return a
}

func (r *articleRepo) sorted(match func(a models.Article) bool, byUpdated bool) []models.Article {
	out := []models.Article{}
	for _, a := range r.s.data.articles {
		if match(a) {
			out = append(out, r.hydrate(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if byUpdated {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func articleMatches(a models.Article, q string) bool {
	return containsFold(a.Title, q) || containsFold(a.Content, q) || containsFold(deref(a.Excerpt), q)
}

func (r *articleRepo) List(_ context.Context, f models.ArticleFilter, p models.Page) ([]models.Article, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := r.sorted(func(a models.Article) bool {
		if f.Status != "" && a.Status != f.Status {
			return false
		}
		if f.CategoryID != "" && deref(a.CategoryID) != f.CategoryID {
			return false
		}
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			return false
		}
		if q := strings.TrimSpace(f.Search); q != "" && !articleMatches(a, q) {
			return false
		}
		return true
	}, false)
	return page(all, p), int64(len(all)), nil
}

func (r *articleRepo) GetByID(_ context.Context, id string) (*models.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.articles[id]
	if !ok {
		return nil, apperr.NotFound("статья")
	}
	out := r.hydrate(a)
	return &out, nil
}

func (r *articleRepo) GetBySlug(_ context.Context, slug string) (*models.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.data.articles {
		if a.Slug == slug {
			out := r.hydrate(a)
			return &out, nil
		}
	}
	return nil, apperr.NotFound("статья")
}

func (r *articleRepo) slugTaken(slug, excludeID string) bool {
	for _, a := range r.s.data.articles {
		if a.Slug == slug && a.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *articleRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.slugTaken(slug, excludeID), nil
}

func (r *articleRepo) Create(_ context.Context, a *models.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.slugTaken(a.Slug, "") {
		return apperr.SlugTaken(a.Slug)
	}
	if err := r.s.checkRefs(a.AuthorID, a.CategoryID); err != nil {
		return err
	}
	now := r.s.tick()
	a.ViewCount, a.CreatedAt, a.UpdatedAt = 0, now, now
	row := *a
	row.Author, row.Category, row.Tags = nil, nil, nil
	r.s.data.articles[a.ID] = row
	return nil
}

func (r *articleRepo) Update(_ context.Context, a *models.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.data.articles[a.ID]
	if !ok {
		return apperr.NotFound("статья")
	}
	if r.slugTaken(a.Slug, a.ID) {
		return apperr.SlugTaken(a.Slug)
	}
	if err := r.s.checkRefs(old.AuthorID, a.CategoryID); err != nil {
		return err
	}
	row := *a
	row.AuthorID, row.ViewCount, row.CreatedAt = old.AuthorID, old.ViewCount, old.CreatedAt
	row.UpdatedAt = r.s.tick()
	row.Author, row.Category, row.Tags = nil, nil, nil
	r.s.data.articles[a.ID] = row
	a.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *articleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.articles[id]; !ok {
		return apperr.NotFound("статья")
	}
	delete(r.s.data.articles, id)
	delete(r.s.data.articleTags, id)
	return nil
}

func (r *articleRepo) ReplaceTags(_ context.Context, articleID string, tagIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range tagIDs {
		if _, ok := r.s.data.tags[id]; !ok {
			return apperr.Invalid("тег %q не существует", id)
		}
	}
	r.s.data.articleTags[articleID] = append([]string(nil), tagIDs...)
	return nil
}

func (r *articleRepo) IncrementViews(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.articles[id]
	if !ok {
		return 0, apperr.NotFound("статья")
	}
	a.ViewCount++
	r.s.data.articles[id] = a
	return a.ViewCount, nil
}

func (r *articleRepo) Search(_ context.Context, q string, limit int) ([]models.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted(func(a models.Article) bool { return articleMatches(a, q) }, true)
	return page(all, models.Page{Page: 1, Limit: limit}), nil
}

// ----- Projects -----

type projectRepo struct{ s *Store }

func (r *projectRepo) hydrate(p models.Project) models.Project {
	p.Author = r.s.authorRef(p.AuthorID)
	p.Category = r.s.categoryRef(p.CategoryID)
	p.Gallery = append([]string{}, p.Gallery...)
	return p
}

func projectMatches(p models.Project, q string) bool {
	return containsFold(p.Title, q) || containsFold(p.Description, q) || containsFold(deref(p.ShortDescription), q)
}

func (r *projectRepo) sorted(match func(p models.Project) bool, byUpdated bool) []models.Project {
	out := []models.Project{}
	for _, p := range r.s.data.projects {
		if match(p) {
			out = append(out, r.hydrate(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if byUpdated {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *projectRepo) List(_ context.Context, f models.ProjectFilter, p models.Page) ([]models.Project, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted(func(x models.Project) bool {
		if f.Status != "" && x.Status != f.Status {
			return false
		}
		if f.CategoryID != "" && deref(x.CategoryID) != f.CategoryID {
			return false
		}
		if f.AuthorID != "" && x.AuthorID != f.AuthorID {
			return false
		}
		if q := strings.TrimSpace(f.Search); q != "" && !projectMatches(x, q) {
			return false
		}
		return true
	}, false)
	return page(all, p), int64(len(all)), nil
}

func (r *projectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.projects[id]
	if !ok {
		return nil, apperr.NotFound("проект")
	}
	out := r.hydrate(p)
	return &out, nil
}

func (r *projectRepo) GetBySlug(_ context.Context, slug string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.projects {
		if p.Slug == slug {
			out := r.hydrate(p)
			return &out, nil
		}
	}
	return nil, apperr.NotFound("проект")
}

func (r *projectRepo) slugTaken(slug, excludeID string) bool {
	for _, p := range r.s.data.projects {
		if p.Slug == slug && p.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *projectRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.slugTaken(slug, excludeID), nil
}

func (r *projectRepo) Create(_ context.Context, p *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.slugTaken(p.Slug, "") {
		return apperr.SlugTaken(p.Slug)
	}
	if err := r.s.checkRefs(p.AuthorID, p.CategoryID); err != nil {
		return err
	}
	now := r.s.tick()
	p.ViewCount, p.CreatedAt, p.UpdatedAt = 0, now, now
	row := *p
	row.Author, row.Category = nil, nil
	row.Gallery = append([]string{}, p.Gallery...)
	r.s.data.projects[p.ID] = row
	return nil
}

func (r *projectRepo) Update(_ context.Context, p *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.data.projects[p.ID]
	if !ok {
		return apperr.NotFound("проект")
	}
	if r.slugTaken(p.Slug, p.ID) {
		return apperr.SlugTaken(p.Slug)
	}
	if err := r.s.checkRefs(old.AuthorID, p.CategoryID); err != nil {
		return err
	}
	row := *p
	row.AuthorID, row.ViewCount, row.CreatedAt = old.AuthorID, old.ViewCount, old.CreatedAt
	row.UpdatedAt = r.s.tick()
	row.Author, row.Category = nil, nil
	row.Gallery = append([]string{}, p.Gallery...)
	r.s.data.projects[p.ID] = row
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *projectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.projects[id]; !ok {
		return apperr.NotFound("проект")
	}
	delete(r.s.data.projects, id)
	return nil
}

func (r *projectRepo) IncrementViews(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.projects[id]
	if !ok {
		return 0, apperr.NotFound("проект")
	}
	p.ViewCount++
	r.s.data.projects[id] = p
	return p.ViewCount, nil
}

func (r *projectRepo) Search(_ context.Context, q string, limit int) ([]models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted(func(p models.Project) bool { return projectMatches(p, q) }, true)
	return page(all, models.Page{Page: 1, Limit: limit}), nil
}

// ----- YouTube -----

type videoRepo struct{ s *Store }

func videoMatches(v models.YouTubeContent, q string) bool {
	return containsFold(v.Title, q) || containsFold(deref(v.Description), q)
}

func (r *videoRepo) sorted(match func(v models.YouTubeContent) bool, byUpdated bool) []models.YouTubeContent {
	out := []models.YouTubeContent{}
	for _, v := range r.s.data.videos {
		if match(v) {
			v.Tags = append([]string{}, v.Tags...)
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if byUpdated {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *videoRepo) List(_ context.Context, f models.YouTubeFilter, p models.Page) ([]models.YouTubeContent, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted(func(v models.YouTubeContent) bool {
		if f.Status != "" && v.Status != f.Status {
			return false
		}
		if q := strings.TrimSpace(f.Search); q != "" && !videoMatches(v, q) {
			return false
		}
		return true
	}, false)
	return page(all, p), int64(len(all)), nil
}

func (r *videoRepo) GetByID(_ context.Context, id string) (*models.YouTubeContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.videos[id]
	if !ok {
		return nil, apperr.NotFound("видео")
	}
	v.Tags = append([]string{}, v.Tags...)
	return &v, nil
}

func (r *videoRepo) Create(_ context.Context, v *models.YouTubeContent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.tick()
	v.CreatedAt, v.UpdatedAt = now, now
	if v.Tags == nil {
		v.Tags = []string{}
	}
	r.s.data.videos[v.ID] = *v
	return nil
}

func (r *videoRepo) Update(_ context.Context, v *models.YouTubeContent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.data.videos[v.ID]
	if !ok {
		return apperr.NotFound("видео")
	}
	v.CreatedAt = old.CreatedAt
	v.UpdatedAt = r.s.tick()
	r.s.data.videos[v.ID] = *v
	return nil
}

func (r *videoRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.videos[id]; !ok {
		return apperr.NotFound("видео")
	}
	delete(r.s.data.videos, id)
	return nil
}

func (r *videoRepo) Search(_ context.Context, q string, limit int) ([]models.YouTubeContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted(func(v models.YouTubeContent) bool { return videoMatches(v, q) }, true)
	return page(all, models.Page{Page: 1, Limit: limit}), nil
}
