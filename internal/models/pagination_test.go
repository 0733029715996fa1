package models

import (
	"math"
	"testing"
	"time"
)

func TestNewPage(t *testing.T) {
	cases := []struct {
		page, limit int
		want        Page
	}{
		{0, 0, Page{1, DefaultPageLimit}},
		{-3, 5, Page{1, 5}},
		{2, 10, Page{2, 10}},
		{1, 1000, Page{1, MaxPageLimit}},
		{math.MaxInt, 10, Page{MaxPage, 10}},
	}
	for _, c := range cases {
		if got := NewPage(c.page, c.limit, 0); got != c.want {
			t.Errorf("NewPage(%d,%d) = %+v, ожидалось %+v", c.page, c.limit, got, c.want)
		}
	}
	if off := (Page{Page: 3, Limit: 10}).Offset(); off != 20 {
		t.Errorf("Offset = %d", off)
	}
	if off := NewPage(math.MaxInt, 1000, 0).Offset(); off < 0 || off > math.MaxInt32 {
		t.Errorf("Offset огромной страницы вышел за пределы: %d", off)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(Page{Page: 2, Limit: 10}, 15)
	if p.Pages != 2 || p.Total != 15 {
		t.Errorf("pagination = %+v", p)
	}
	if p := NewPagination(Page{Page: 1, Limit: 10}, 0); p.Pages != 0 {
		t.Errorf("пустая выборка: pages = %d", p.Pages)
	}
	if p := NewPagination(Page{Page: 1, Limit: 10}, 20); p.Pages != 2 {
		t.Errorf("ровное деление: pages = %d", p.Pages)
	}
}

func TestNextPublishedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if got := NextPublishedAt(nil, StatusDraft, now); got != nil {
		t.Fatalf("черновик не должен получать publishedAt: %v", got)
	}

	first := NextPublishedAt(nil, StatusPublished, now)
	if first == nil || !first.Equal(now) {
		t.Fatalf("первая публикация: %v", first)
	}

	later := now.Add(48 * time.Hour)
	if got := NextPublishedAt(first, StatusDraft, later); got == nil || !got.Equal(now) {
		t.Errorf("возврат в черновик не должен сбрасывать дату: %v", got)
	}
	if got := NextPublishedAt(first, StatusPublished, later); !got.Equal(now) {
		t.Errorf("повторная публикация не должна менять дату: %v", got)
	}
}

func TestRoleAndStatusValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleSEO} {
		if !r.Valid() {
			t.Errorf("%s должна быть валидной", r)
		}
	}
	if Role("admin").Valid() || Role("").Valid() {
		t.Error("роли вне перечисления недопустимы")
	}
	if ContentStatus("ARCHIVED").Valid() {
		t.Error("ARCHIVED не входит в перечисление")
	}
}
