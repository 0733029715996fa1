package handlers

import (
	"net/http"

	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
// @Summary Список пользователей
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} helpers.Response{data=[]models.User}
// @Failure 403 {object} helpers.Response
// @Router /api/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageQuery(r)
	res, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Page(w, res)
}

// Get godoc
// @Summary Пользователь по id
// @Description Вместе с числом статей и проектов.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} helpers.Response{data=models.User}
// @Failure 404 {object} helpers.Response
// @Router /api/users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), pathVar(r, "id"))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, u)
}

// Create godoc
// @Summary Создать пользователя
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.UserInput true "Данные пользователя"
// @Success 201 {object} helpers.Response{data=models.User}
// @Failure 400 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.UserInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	u, err := h.svc.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, u)
}

// Update godoc
// @Summary Обновить пользователя
// @Description Пустой пароль оставляет прежний.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param input body models.UserInput true "Данные пользователя"
// @Success 200 {object} helpers.Response{data=models.User}
// @Failure 404 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UserInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	u, err := h.svc.Update(r.Context(), pathVar(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, u)
}

// Delete godoc
// @Summary Удалить пользователя
// @Description Нельзя удалить себя и пользователя, у которого есть статьи или проекты.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} helpers.Response
// @Failure 400 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathVar(r, "id")); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Пользователь удалён")
}
