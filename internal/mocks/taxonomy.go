package mocks

import (
	"context"
	"sort"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

type categoryRepo struct{ s *Store }

func (r *categoryRepo) withCounts(c models.Category) models.Category {
	var counts models.CategoryCounts
	for _, a := range r.s.data.articles {
		if deref(a.CategoryID) == c.ID {
			counts.Articles++
		}
	}
	for _, p := range r.s.data.projects {
		if deref(p.CategoryID) == c.ID {
			counts.Projects++
		}
	}
	c.Counts = &counts
	return c
}

func (r *categoryRepo) List(_ context.Context) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Category{}
	for _, c := range r.s.data.categories {
		out = append(out, r.withCounts(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, apperr.NotFound("категория")
	}
	out := r.withCounts(c)
	return &out, nil
}

func (r *categoryRepo) taken(name, slug, excludeID string) bool {
	for _, c := range r.s.data.categories {
		if c.ID != excludeID && (c.Name == name || c.Slug == slug) {
			return true
		}
	}
	return false
}

func (r *categoryRepo) NameOrSlugTaken(_ context.Context, name, slug, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.taken(name, slug, excludeID), nil
}

func (r *categoryRepo) Create(_ context.Context, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.taken(c.Name, c.Slug, "") {
		return apperr.Exists("категория %q", c.Name)
	}
	now := r.s.tick()
	c.CreatedAt, c.UpdatedAt = now, now
	row := *c
	row.Counts = nil
	r.s.data.categories[c.ID] = row
	return nil
}

func (r *categoryRepo) Update(_ context.Context, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.data.categories[c.ID]
	if !ok {
		return apperr.NotFound("категория")
	}
	if r.taken(c.Name, c.Slug, c.ID) {
		return apperr.Exists("категория %q", c.Name)
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = r.s.tick()
	row := *c
	row.Counts = nil
	r.s.data.categories[c.ID] = row
	return nil
}

// Delete снимает категорию со статей и проектов, как ON DELETE SET NULL.
func (r *categoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[id]; !ok {
		return apperr.NotFound("категория")
	}
	delete(r.s.data.categories, id)
	for k, a := range r.s.data.articles {
		if deref(a.CategoryID) == id {
			a.CategoryID = nil
			r.s.data.articles[k] = a
		}
	}
	for k, p := range r.s.data.projects {
		if deref(p.CategoryID) == id {
			p.CategoryID = nil
			r.s.data.projects[k] = p
		}
	}
	return nil
}

type tagRepo struct{ s *Store }

func (r *tagRepo) withCount(t models.Tag) models.Tag {
	t.Articles = 0
	for _, ids := range r.s.data.articleTags {
		for _, id := range ids {
			if id == t.ID {
				t.Articles++
			}
		}
	}
	return t
}

func (r *tagRepo) List(_ context.Context) ([]models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Tag{}
	for _, t := range r.s.data.tags {
		out = append(out, r.withCount(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *tagRepo) GetByID(_ context.Context, id string) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.data.tags[id]
	if !ok {
		return nil, apperr.NotFound("тег")
	}
	out := r.withCount(t)
	return &out, nil
}

func (r *tagRepo) taken(name, slug string) bool {
	for _, t := range r.s.data.tags {
		if t.Name == name || t.Slug == slug {
			return true
		}
	}
	return false
}

func (r *tagRepo) NameOrSlugTaken(_ context.Context, name, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.taken(name, slug), nil
}

func (r *tagRepo) CountExisting(_ context.Context, ids []string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	for _, id := range ids {
		if _, ok := r.s.data.tags[id]; ok {
			seen[id] = true
		}
	}
	return len(seen), nil
}

func (r *tagRepo) Create(_ context.Context, t *models.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.taken(t.Name, t.Slug) {
		return apperr.Exists("тег %q", t.Name)
	}
	t.CreatedAt = r.s.tick()
	r.s.data.tags[t.ID] = *t
	return nil
}

// Delete убирает тег и его связи со статьями (ON DELETE CASCADE).
func (r *tagRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.tags[id]; !ok {
		return apperr.NotFound("тег")
	}
	delete(r.s.data.tags, id)
	for aid, ids := range r.s.data.articleTags {
		kept := ids[:0:0]
		for _, tid := range ids {
			if tid != id {
				kept = append(kept, tid)
			}
		}
		r.s.data.articleTags[aid] = kept
	}
	return nil
}
