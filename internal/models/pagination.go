package models

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage держит (page-1)*limit в пределах int при любом допустимом limit.
	MaxPage = math.MaxInt32 / MaxPageLimit
)

// Page — запрошенная страница (page >= 1, limit >= 1).
type Page struct {
	Page  int
	Limit int
}

// NewPage нормализует page/limit: неположительные значения заменяются
// дефолтами, limit ограничен MaxPageLimit, page ограничен MaxPage.
func NewPage(page, limit, defLimit int) Page {
	if defLimit <= 0 {
		defLimit = DefaultPageLimit
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = defLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(p Page, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

// PageResult — страница строк и метаданные пагинации.
type PageResult[T any] struct {
	Items      []T
	Pagination Pagination
}

func NewPageResult[T any](items []T, p Page, total int64) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResult[T]{Items: items, Pagination: NewPagination(p, total)}
}
