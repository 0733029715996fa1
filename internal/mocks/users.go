package mocks

import (
	"context"
	"sort"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

// ----- Users -----

type userRepo struct{ s *Store }

func (r *userRepo) withCounts(u models.User) models.User {
	var counts models.UserCounts
	for _, a := range r.s.data.articles {
		if a.AuthorID == u.ID {
			counts.Articles++
		}
	}
	for _, p := range r.s.data.projects {
		if p.AuthorID == u.ID {
			counts.Projects++
		}
	}
	u.Counts = &counts
	return u
}

func (r *userRepo) List(_ context.Context, p models.Page) ([]models.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := []models.User{}
	for _, u := range r.s.data.users {
		all = append(all, r.withCounts(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, p), int64(len(all)), nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, apperr.NotFound("пользователь")
	}
	out := r.withCounts(u)
	return &out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if u.Email == email {
			out := r.withCounts(u)
			return &out, nil
		}
	}
	return nil, apperr.NotFound("пользователь")
}

func (r *userRepo) emailTaken(email, excludeID string) bool {
	for _, u := range r.s.data.users {
		if u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *userRepo) IsEmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.emailTaken(email, excludeID), nil
}

func (r *userRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, "") {
		return apperr.Exists("email %q", u.Email)
	}
	now := r.s.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	row := *u
	row.Counts = nil
	r.s.data.users[u.ID] = row
	return nil
}

func (r *userRepo) Update(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.data.users[u.ID]
	if !ok {
		return apperr.NotFound("пользователь")
	}
	if r.emailTaken(u.Email, u.ID) {
		return apperr.Exists("email %q", u.Email)
	}
	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = r.s.tick()
	row := *u
	row.Counts = nil
	r.s.data.users[u.ID] = row
	return nil
}

// Delete повторяет FK: RESTRICT для авторства, SET NULL для медиа и аудита.
func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[id]; !ok {
		return apperr.NotFound("пользователь")
	}
	for _, a := range r.s.data.articles {
		if a.AuthorID == id {
			return apperr.Invalid("у пользователя есть статьи")
		}
	}
	for _, p := range r.s.data.projects {
		if p.AuthorID == id {
			return apperr.Invalid("у пользователя есть проекты")
		}
	}
	delete(r.s.data.users, id)
	for k, m := range r.s.data.media {
		if deref(m.UploadedBy) == id {
			m.UploadedBy = nil
			r.s.data.media[k] = m
		}
	}
	for i, l := range r.s.data.audits {
		if deref(l.UserID) == id {
			r.s.data.audits[i].UserID = nil
		}
	}
	return nil
}

// AddUser кладёт пользователя напрямую, минуя сервис (для подготовки тестов).
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	u.Counts = nil
	s.data.users[u.ID] = u
	return u
}

// ----- Media -----

type mediaRepo struct{ s *Store }

func (r *mediaRepo) List(_ context.Context, search string, p models.Page) ([]models.Media, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := []models.Media{}
	for _, m := range r.s.data.media {
		if search != "" && !containsFold(m.Filename, search) && !containsFold(deref(m.AltText), search) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, p), int64(len(all)), nil
}

func (r *mediaRepo) GetByID(_ context.Context, id string) (*models.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.media[id]
	if !ok {
		return nil, apperr.NotFound("медиафайл")
	}
	return &m, nil
}

func (r *mediaRepo) Create(_ context.Context, m *models.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.tick()
	m.CreatedAt, m.UpdatedAt = now, now
	r.s.data.media[m.ID] = *m
	return nil
}

func (r *mediaRepo) Update(_ context.Context, m *models.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.data.media[m.ID]
	if !ok {
		return apperr.NotFound("медиафайл")
	}
	row.AltText, row.Caption = m.AltText, m.Caption
	row.UpdatedAt = r.s.tick()
	r.s.data.media[m.ID] = row
	m.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *mediaRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.media[id]; !ok {
		return apperr.NotFound("медиафайл")
	}
	delete(r.s.data.media, id)
	return nil
}

// ----- Settings -----

type settingsRepo struct{ s *Store }

func (r *settingsRepo) GetCompany(_ context.Context) (*models.CompanyProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.company == nil {
		return nil, apperr.NotFound("профиль компании")
	}
	c := *r.s.data.company
	return &c, nil
}

func (r *settingsRepo) UpsertCompany(_ context.Context, c *models.CompanyProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = models.CompanyProfileID
	c.UpdatedAt = r.s.tick()
	row := *c
	r.s.data.company = &row
	return nil
}

func (r *settingsRepo) GetSeo(_ context.Context) (*models.SeoSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.seo == nil {
		return nil, apperr.NotFound("SEO-настройки")
	}
	v := *r.s.data.seo
	return &v, nil
}

func (r *settingsRepo) UpsertSeo(_ context.Context, v *models.SeoSetting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = models.SeoSettingID
	v.UpdatedAt = r.s.tick()
	row := *v
	r.s.data.seo = &row
	return nil
}

// ----- Audit -----

type auditRepo struct{ s *Store }

func (r *auditRepo) Create(_ context.Context, l *models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !l.Action.Valid() {
		return apperr.Invalid("недопустимое действие аудита %q", l.Action)
	}
	l.CreatedAt = r.s.tick()
	r.s.data.audits = append(r.s.data.audits, *l)
	return nil
}

func (r *auditRepo) List(_ context.Context, f models.AuditFilter, p models.Page) ([]models.AuditLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := []models.AuditLog{}
	for _, l := range r.s.data.audits {
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.UserID != "" && deref(l.UserID) != f.UserID {
			continue
		}
		if f.Since != nil && l.CreatedAt.Before(*f.Since) {
			continue
		}
		if l.UserID != nil {
			if u, ok := r.s.data.users[*l.UserID]; ok {
				l.User = &models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
			}
		}
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, p), int64(len(all)), nil
}
