// Package mocks — хранилище в памяти, реализующее интерфейсы репозиториев.
// Используется в тестах сервисов и хендлеров вместо PostgreSQL.
package mocks

import (
	"context"
	"sync"
	"time"

	"formulator/internal/models"
	"formulator/internal/repository"
)

// Store держит все таблицы в памяти. Отметки времени монотонно растут,
// чтобы сортировка по created_at была детерминированной.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	base time.Time
	seq  int64

	data tables
}

type tables struct {
	users       map[string]models.User
	articles    map[string]models.Article
	articleTags map[string][]string
	projects    map[string]models.Project
	categories  map[string]models.Category
	tags        map[string]models.Tag
	videos      map[string]models.YouTubeContent
	media       map[string]models.Media
	audits      []models.AuditLog
	company     *models.CompanyProfile
	seo         *models.SeoSetting
}

func newTables() tables {
	return tables{
		users:       map[string]models.User{},
		articles:    map[string]models.Article{},
		articleTags: map[string][]string{},
		projects:    map[string]models.Project{},
		categories:  map[string]models.Category{},
		tags:        map[string]models.Tag{},
		videos:      map[string]models.YouTubeContent{},
		media:       map[string]models.Media{},
		audits:      []models.AuditLog{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.articles {
		c.articles[k] = v
	}
	for k, v := range t.articleTags {
		c.articleTags[k] = append([]string(nil), v...)
	}
	for k, v := range t.projects {
		c.projects[k] = v
	}
	for k, v := range t.categories {
		c.categories[k] = v
	}
	for k, v := range t.tags {
		c.tags[k] = v
	}
	for k, v := range t.videos {
		c.videos[k] = v
	}
	for k, v := range t.media {
		c.media[k] = v
	}
	c.audits = append(c.audits, t.audits...)
	if t.company != nil {
		cp := *t.company
		c.company = &cp
	}
	if t.seo != nil {
		sp := *t.seo
		c.seo = &sp
	}
	return c
}

func NewStore() *Store {
	return &Store{base: time.Now().UTC(), data: newTables()}
}

// tick возвращает следующую отметку времени. Вызывать под s.mu.
func (s *Store) tick() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Microsecond)
}

// Transactor сериализует транзакции и откатывает таблицы, если fn вернула ошибку.
func (s *Store) Transactor() repository.Transactor { return &transactor{s: s} }

type inTxKey struct{}

type transactor struct{ s *Store }

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}

	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.mu.Lock()
	saved := t.s.data.clone()
	t.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		t.s.mu.Lock()
		t.s.data = saved
		t.s.mu.Unlock()
		return err
	}
	return nil
}

// Repos собирает все репозитории поверх одного Store.
type Repos = repository.Set

func (s *Store) Repos() Repos {
	return Repos{
		Articles:   &articleRepo{s: s},
		Projects:   &projectRepo{s: s},
		Categories: &categoryRepo{s: s},
		Tags:       &tagRepo{s: s},
		Videos:     &videoRepo{s: s},
		Media:      &mediaRepo{s: s},
		Settings:   &settingsRepo{s: s},
		Users:      &userRepo{s: s},
		Audit:      &auditRepo{s: s},
		Stats:      &statsRepo{s: s},
		Tx:         s.Transactor(),
	}
}

// AuditCount — число записей журнала (для проверок в тестах).
func (s *Store) AuditCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.audits)
}

// AuditEntries возвращает копию журнала в порядке записи.
func (s *Store) AuditEntries() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.data.audits...)
}

func (s *Store) ArticleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.articles)
}

func (s *Store) ProjectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.projects)
}

// page вырезает страницу из уже отсортированного списка.
func page[T any](items []T, p models.Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return append([]T{}, items[start:end]...)
}
