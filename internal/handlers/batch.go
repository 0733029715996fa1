package handlers

import (
	"net/http"

	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type BatchHandler struct {
	svc *services.BatchService
}

func NewBatchHandler(svc *services.BatchService) *BatchHandler {
	return &BatchHandler{svc: svc}
}

// Execute
// @Summary      Пакетная операция
// @Description  DELETE, UPDATE_STATUS или ASSIGN_CATEGORY над набором id в одной транзакции.
// @Description  Ошибка на любом элементе откатывает весь пакет, в ответе success=false и отчёт по элементам.
// @Tags         batch
// @Accept       json
// @Produce      json
// @Param        body  body  models.BatchRequest  true  "Операция"
// @Success      200  {object}  helpers.Response{data=models.BatchResult}
// @Failure      400  {object}  helpers.Response{data=models.BatchResult}
// @Failure      404  {object}  helpers.Response{data=models.BatchResult}
// @Failure      403  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/batch [post]
func (h *BatchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}

	res, err := h.svc.Execute(r.Context(), req)
	if err != nil {
		if res == nil {
			helpers.WriteError(w, err)
			return
		}
		status := helpers.StatusFor(err)
		msg := "Пакет отменён, изменения откатены"
		if status == http.StatusInternalServerError {
			msg = "Внутренняя ошибка сервера"
		}
		helpers.Failure(w, status, msg, res)
		return
	}
	helpers.JSON(w, http.StatusOK, res)
}
