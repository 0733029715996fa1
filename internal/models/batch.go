package models

type BatchAction string

const (
	BatchDelete         BatchAction = "DELETE"
	BatchUpdateStatus   BatchAction = "UPDATE_STATUS"
	BatchAssignCategory BatchAction = "ASSIGN_CATEGORY"
)

type BatchEntity string

const (
	BatchArticles BatchEntity = "articles"
	BatchProjects BatchEntity = "projects"
	BatchYouTube  BatchEntity = "youtube"
)

// MaxBatchSize ограничивает число id в одном запросе.
const MaxBatchSize = 100

type BatchData struct {
	Status     *ContentStatus `json:"status,omitempty"`
	CategoryID *string        `json:"categoryId,omitempty"`
}

// swagger:model BatchRequest
type BatchRequest struct {
	Action BatchAction `json:"action"`
	Entity BatchEntity `json:"entity"`
	IDs    []string    `json:"ids"`
	Data   BatchData   `json:"data"`
}

// BatchItemResult — итог по одному id. Если пакет откатился, успешные до
// сбоя элементы помечаются RolledBack, а не дошедшие до обработки — Skipped.
type BatchItemResult struct {
	ID         string `json:"id"`
	OK         bool   `json:"ok"`
	RolledBack bool   `json:"rolledBack,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	Error      string `json:"error,omitempty"`
}

type BatchResult struct {
	Action    BatchAction       `json:"action"`
	Entity    BatchEntity       `json:"entity"`
	Processed int               `json:"processed"`
	Items     []BatchItemResult `json:"items"`
}
