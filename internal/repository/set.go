package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Set — все репозитории приложения и транзакции над одним пулом.
type Set struct {
	Articles   ArticleRepo
	Projects   ProjectRepo
	Categories CategoryRepo
	Tags       TagRepo
	Videos     YouTubeRepo
	Media      MediaRepo
	Settings   SettingsRepo
	Users      UserRepo
	Audit      AuditRepo
	Stats      StatsRepo
	Tx         Transactor
}

func NewSet(db *pgxpool.Pool) Set {
	return Set{
		Articles:   NewArticleRepo(db),
		Projects:   NewProjectRepo(db),
		Categories: NewCategoryRepo(db),
		Tags:       NewTagRepo(db),
		Videos:     NewYouTubeRepo(db),
		Media:      NewMediaRepo(db),
		Settings:   NewSettingsRepo(db),
		Users:      NewUserRepository(db),
		Audit:      NewAuditRepo(db),
		Stats:      NewStatsRepo(db),
		Tx:         NewTransactor(db),
	}
}
