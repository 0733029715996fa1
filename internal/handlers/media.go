package handlers

import (
	"net/http"

	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type MediaHandler struct {
	svc *services.MediaService
}

func NewMediaHandler(svc *services.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// List
// @Summary      Медиатека
// @Tags         media
// @Produce      json
// @Param        page    query  int     false  "Страница"
// @Param        limit   query  int     false  "Размер страницы"
// @Param        search  query  string  false  "Поиск по имени файла, alt и подписи"
// @Success      200  {object}  helpers.Response{data=[]models.Media}
// @Failure      401  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/media [get]
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageQuery(r)
	res, err := h.svc.List(r.Context(), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Page(w, res)
}

// Get
// @Summary      Файл по id
// @Tags         media
// @Produce      json
// @Param        id  path  string  true  "ID файла"
// @Success      200  {object}  helpers.Response{data=models.Media}
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/media/{id} [get]
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Get(r.Context(), pathVar(r, "id"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, m)
}

// Create
// @Summary      Зарегистрировать файл
// @Description  Файл уже лежит в хранилище, сюда передаются его URL и метаданные.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        body  body  models.MediaInput  true  "Метаданные файла"
// @Success      201  {object}  helpers.Response{data=models.Media}
// @Failure      400  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/media [post]
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MediaInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	m, err := h.svc.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, m)
}

// Update
// @Summary      Обновить alt и подпись
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID файла"
// @Param        body  body  models.MediaUpdate  true  "alt и подпись"
// @Success      200  {object}  helpers.Response{data=models.Media}
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/media/{id} [put]
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.MediaUpdate
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	m, err := h.svc.Update(r.Context(), pathVar(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, m)
}

// Delete
// @Summary      Удалить файл
// @Tags         media
// @Produce      json
// @Param        id  path  string  true  "ID файла"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/media/{id} [delete]
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathVar(r, "id")); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Файл удалён")
}
