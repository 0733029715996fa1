package models

type SearchType string

const (
	SearchAll      SearchType = "all"
	SearchArticles SearchType = "articles"
	SearchProjects SearchType = "projects"
	SearchVideos   SearchType = "videos"
)

const (
	SearchMinQuery     = 2
	SearchDefaultLimit = 10
	SearchMaxLimit     = 50
)

type SearchResult struct {
	Query    string           `json:"query"`
	Type     SearchType       `json:"type"`
	Articles []Article        `json:"articles"`
	Projects []Project        `json:"projects"`
	Videos   []YouTubeContent `json:"videos"`
	Total    int              `json:"total"`
}
