package handlers

import (
	"net/http"
	"strings"

	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List
// @Summary      Список статей
// @Tags         articles
// @Produce      json
// @Param        page        query  int     false  "Страница (с 1)"
// @Param        limit       query  int     false  "Размер страницы (по умолч. 10, макс. 100)"
// @Param        status      query  string  false  "DRAFT | IN_REVIEW | PUBLISHED"
// @Param        categoryId  query  string  false  "Фильтр по категории"
// @Param        authorId    query  string  false  "Фильтр по автору"
// @Param        search      query  string  false  "Подстрока в заголовке, тексте или анонсе"
// @Success      200  {object}  helpers.Response{data=[]models.Article}
// @Failure      400  {object}  helpers.Response
// @Router       /api/articles [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	status, err := statusQuery(r)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	f := models.ArticleFilter{
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
// @Summary      Статья по id
// @Tags         articles
// @Produce      json
// @Param        id   path  string  true  "ID статьи"
// @Success      200  {object}  helpers.Response{data=models.Article}
// @Failure      404  {object}  helpers.Response
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetByID(r.Context(), pathVar(r, "id"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// GetBySlug
// @Summary      Опубликованная статья по slug
// @Description  Увеличивает счётчик просмотров. Черновики отдают 404.
// @Tags         articles
// @Produce      json
// @Param        slug  path  string  true  "Slug статьи"
// @Success      200  {object}  helpers.Response{data=models.Article}
// @Failure      404  {object}  helpers.Response
// @Router       /api/articles/slug/{slug} [get]
func (h *ArticleHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetPublishedBySlug(r.Context(), pathVar(r, "slug"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

type previewRequest struct {
	Content string `json:"content"`
}

// Preview
// @Summary      Предпросмотр статьи
// @Description  Возвращает очищенный HTML (без сохранения в БД)
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body  previewRequest  true  "Сырой HTML статьи"
// @Success      200   {object}  helpers.Response
// @Failure      400   {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/articles/preview [post]
func (h *ArticleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"content": h.svc.PreviewHTML(req.Content)})
}

// Create
// @Summary      Создать статью
// @Description  Slug строится из заголовка. Занятый slug даёт 409.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body  models.ArticleInput  true  "Данные статьи"
// @Success      201   {object}  helpers.Response{data=models.Article}
// @Failure      400   {object}  helpers.Response
// @Failure      401   {object}  helpers.Response
// @Failure      409   {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ArticleInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	a, err := h.svc.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, a)
}

// Update
// @Summary      Обновить статью
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID статьи"
// @Param        body  body  models.ArticleInput  true  "Новые данные статьи"
// @Success      200   {object}  helpers.Response{data=models.Article}
// @Failure      400   {object}  helpers.Response
// @Failure      404   {object}  helpers.Response
// @Failure      409   {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ArticleInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	a, err := h.svc.Update(r.Context(), pathVar(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// Delete
// @Summary      Удалить статью
// @Tags         articles
// @Produce      json
// @Param        id  path  string  true  "ID статьи"
// @Success      200  {object}  helpers.Response
// @Failure      403  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathVar(r, "id")); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Статья удалена")
}
