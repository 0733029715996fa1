package models

import "time"

// DashboardOverview — сводные счётчики по контенту.
type DashboardOverview struct {
	TotalArticles     int     `json:"totalArticles"`
	PublishedArticles int     `json:"publishedArticles"`
	DraftArticles     int     `json:"draftArticles"`
	InReviewArticles  int     `json:"inReviewArticles"`
	TotalProjects     int     `json:"totalProjects"`
	PublishedProjects int     `json:"publishedProjects"`
	TotalVideos       int     `json:"totalVideos"`
	TotalUsers        int     `json:"totalUsers"`
	TotalViews        int64   `json:"totalViews"`
	PublishedPct      float64 `json:"publishedPct"`
}

type StatusCount struct {
	Status ContentStatus `json:"status"`
	Count  int           `json:"count"`
}

type CategoryCount struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Count      int    `json:"count"`
}

// ArticleSummary — строка статьи в списках дашборда.
type ArticleSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Status      ContentStatus `json:"status"`
	ViewCount   int64         `json:"viewCount"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	AuthorName  string        `json:"authorName"`
}

type DashboardStats struct {
	Overview           DashboardOverview `json:"overview"`
	RecentArticles     []ArticleSummary  `json:"recentArticles"`
	PopularArticles    []ArticleSummary  `json:"popularArticles"`
	ContentByStatus    []StatusCount     `json:"contentByStatus"`
	ArticlesByCategory []CategoryCount   `json:"articlesByCategory"`
}

type CategoryActivity struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Articles   int    `json:"articles"`
	Projects   int    `json:"projects"`
}

type UserActivity struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Articles int    `json:"articles"`
	Projects int    `json:"projects"`
}

type Analytics struct {
	PeriodDays     int                `json:"periodDays"`
	Since          time.Time          `json:"since"`
	ContentTrends  []StatusCount      `json:"contentTrends"`
	TopArticles    []ArticleSummary   `json:"topArticles"`
	CategoryStats  []CategoryActivity `json:"categoryStats"`
	UserActivity   []UserActivity     `json:"userActivity"`
	RecentActivity []AuditLog         `json:"recentActivity"`
}
