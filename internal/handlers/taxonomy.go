package handlers

import (
	"net/http"

	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type TaxonomyHandler struct {
	svc *services.TaxonomyService
}

func NewTaxonomyHandler(svc *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{svc: svc}
}

// ListCategories
// @Summary      Список категорий
// @Description  Отсортирован по имени, с числом статей и проектов.
// @Tags         categories
// @Produce      json
// @Success      200  {object}  helpers.Response{data=[]models.Category}
// @Router       /api/categories [get]
func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListCategories(r.Context())
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	helpers.JSON(w, http.StatusOK, items)
}

// GetCategory
// @Summary      Категория по id
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID категории"
// @Success      200  {object}  helpers.Response{data=models.Category}
// @Failure      404  {object}  helpers.Response
// @Router       /api/categories/{id} [get]
func (h *TaxonomyHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCategory(r.Context(), pathVar(r, "id"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, c)
}

// CreateCategory
// @Summary      Создать категорию
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  models.CategoryInput  true  "Категория"
// @Success      201  {object}  helpers.Response{data=models.Category}
// @Failure      400  {object}  helpers.Response
// @Failure      409  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/categories [post]
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, c)
}

// UpdateCategory
// @Summary      Обновить категорию
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID категории"
// @Param        body  body  models.CategoryInput  true  "Категория"
// @Success      200  {object}  helpers.Response{data=models.Category}
// @Failure      404  {object}  helpers.Response
// @Failure      409  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/categories/{id} [put]
func (h *TaxonomyHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	c, err := h.svc.UpdateCategory(r.Context(), pathVar(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, c)
}

// DeleteCategory
// @Summary      Удалить категорию
// @Description  Статьи и проекты остаются, связь с категорией обнуляется.
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID категории"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), pathVar(r, "id")); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Категория удалена")
}

// ListTags
// @Summary      Список тегов
// @Tags         tags
// @Produce      json
// @Success      200  {object}  helpers.Response{data=[]models.Tag}
// @Router       /api/tags [get]
func (h *TaxonomyHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListTags(r.Context())
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	if items == nil {
		items = []models.Tag{}
	}
	helpers.JSON(w, http.StatusOK, items)
}

// CreateTag
// @Summary      Создать тег
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        body  body  models.TagInput  true  "Тег"
// @Success      201  {object}  helpers.Response{data=models.Tag}
// @Failure      409  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/tags [post]
func (h *TaxonomyHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req models.TagInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	t, err := h.svc.CreateTag(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, t)
}

// DeleteTag
// @Summary      Удалить тег
// @Tags         tags
// @Produce      json
// @Param        id  path  string  true  "ID тега"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/tags/{id} [delete]
func (h *TaxonomyHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTag(r.Context(), pathVar(r, "id")); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Тег удалён")
}
