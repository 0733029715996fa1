package handlers

import (
	"net/http"
	"strings"

	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type YouTubeHandler struct {
	svc services.YouTubeService
}

func NewYouTubeHandler(svc services.YouTubeService) *YouTubeHandler {
	return &YouTubeHandler{svc: svc}
}

// List
// @Summary      Список видео
// @Tags         youtube
// @Produce      json
// @Param        page    query  int     false  "Страница"
// @Param        limit   query  int     false  "Размер страницы"
// @Param        status  query  string  false  "DRAFT | IN_REVIEW | PUBLISHED"
// @Param        search  query  string  false  "Подстрока в заголовке или описании"
// @Success      200  {object}  helpers.Response{data=[]models.YouTubeContent}
// @Router       /api/youtube [get]
func (h *YouTubeHandler) List(w http.ResponseWriter, r *http.Request) {
	status, err := statusQuery(r)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	f := models.YouTubeFilter{Status: status, Search: strings.TrimSpace(r.URL.Query().Get("search"))}
	page, limit := pageQuery(r)
	res, err := h.svc.List(r.Context(), f, page, limit)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Page(w, res)
}

// GetByID
// @Summary      Видео по id
// @Tags         youtube
// @Produce      json
// @Param        id  path  string  true  "ID видео"
// @Success      200  {object}  helpers.Response{data=models.YouTubeContent}
// @Failure      404  {object}  helpers.Response
// @Router       /api/youtube/{id} [get]
func (h *YouTubeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetByID(r.Context(), pathVar(r, "id"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, v)
}

// Create
// @Summary      Добавить видео
// @Description  Из ссылки извлекается id ролика и строится превью. Статус по умолчанию PUBLISHED.
// @Tags         youtube
// @Accept       json
// @Produce      json
// @Param        body  body  models.YouTubeInput  true  "Данные видео"
// @Success      201  {object}  helpers.Response{data=models.YouTubeContent}
// @Failure      400  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/youtube [post]
func (h *YouTubeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.YouTubeInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	v, err := h.svc.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, v)
}

// Update
// @Summary      Обновить видео
// @Tags         youtube
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID видео"
// @Param        body  body  models.YouTubeInput  true  "Новые данные"
// @Success      200  {object}  helpers.Response{data=models.YouTubeContent}
// @Failure      400  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/youtube/{id} [put]
func (h *YouTubeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.YouTubeInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	v, err := h.svc.Update(r.Context(), pathVar(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, v)
}

// Delete
// @Summary      Удалить видео
// @Tags         youtube
// @Produce      json
// @Param        id  path  string  true  "ID видео"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/youtube/{id} [delete]
func (h *YouTubeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathVar(r, "id")); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Видео удалено")
}
