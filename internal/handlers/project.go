package handlers

import (
	"net/http"
	"strings"

	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type ProjectHandler struct {
	svc services.ProjectService
}

func NewProjectHandler(svc services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List
// @Summary      Список проектов
// @Tags         projects
// @Produce      json
// @Param        page        query  int     false  "Страница"
// @Param        limit       query  int     false  "Размер страницы"
// @Param        status      query  string  false  "DRAFT | IN_REVIEW | PUBLISHED"
// @Param        categoryId  query  string  false  "Фильтр по категории"
// @Param        search      query  string  false  "Подстрока в заголовке или описании"
// @Success      200  {object}  helpers.Response{data=[]models.Project}
// @Router       /api/projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	status, err := statusQuery(r)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	f := models.ProjectFilter{
		Status:     status,
		CategoryID: q.Get("categoryId"),
		AuthorID:   q.Get("authorId"),
		Search:     strings.TrimSpace(q.Get("search")),
	}
	page, limit := pageQuery(r)
	res, err := h.svc.List(r.Context(), f, page, limit)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Page(w, res)
}

// GetByID
// @Summary      Проект по id
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "ID проекта"
// @Success      200  {object}  helpers.Response{data=models.Project}
// @Failure      404  {object}  helpers.Response
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), pathVar(r, "id"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// GetBySlug
// @Summary      Опубликованный проект по slug
// @Tags         projects
// @Produce      json
// @Param        slug  path  string  true  "Slug проекта"
// @Success      200  {object}  helpers.Response{data=models.Project}
// @Failure      404  {object}  helpers.Response
// @Router       /api/projects/slug/{slug} [get]
func (h *ProjectHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPublishedBySlug(r.Context(), pathVar(r, "slug"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// Create
// @Summary      Создать проект
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  models.ProjectInput  true  "Данные проекта"
// @Success      201  {object}  helpers.Response{data=models.Project}
// @Failure      400  {object}  helpers.Response
// @Failure      409  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, p)
}

// Update
// @Summary      Обновить проект
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID проекта"
// @Param        body  body  models.ProjectInput  true  "Новые данные"
// @Success      200  {object}  helpers.Response{data=models.Project}
// @Failure      400  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	p, err := h.svc.Update(r.Context(), pathVar(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// Delete
// @Summary      Удалить проект
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "ID проекта"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathVar(r, "id")); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Проект удалён")
}
