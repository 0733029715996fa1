package handlers

import (
	"net/http"

	"formulator/internal/apperr"
	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetCompany
// @Summary      Профиль компании
// @Description  404, пока профиль ни разу не сохраняли.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  helpers.Response{data=models.CompanyProfile}
// @Failure      404  {object}  helpers.Response
// @Router       /api/company [get]
func (h *SettingsHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCompany(r.Context())
	if err == nil && c == nil {
		err = apperr.NotFound("профиль компании")
	}
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, c)
}

// SaveCompany
// @Summary      Сохранить профиль компании
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  models.CompanyProfileInput  true  "Профиль"
// @Success      200  {object}  helpers.Response{data=models.CompanyProfile}
// @Failure      400  {object}  helpers.Response
// @Failure      403  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/company [put]
func (h *SettingsHandler) SaveCompany(w http.ResponseWriter, r *http.Request) {
	var req models.CompanyProfileInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	c, err := h.svc.SaveCompany(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, c)
}

// GetSeo
// @Summary      SEO-настройки сайта
// @Tags         settings
// @Produce      json
// @Success      200  {object}  helpers.Response{data=models.SeoSetting}
// @Failure      404  {object}  helpers.Response
// @Router       /api/seo [get]
func (h *SettingsHandler) GetSeo(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetSeo(r.Context())
	if err == nil && s == nil {
		err = apperr.NotFound("SEO-настройки")
	}
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, s)
}

// SaveSeo
// @Summary      Сохранить SEO-настройки
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  models.SeoSettingInput  true  "SEO-настройки"
// @Success      200  {object}  helpers.Response{data=models.SeoSetting}
// @Failure      400  {object}  helpers.Response
// @Failure      403  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/seo [put]
func (h *SettingsHandler) SaveSeo(w http.ResponseWriter, r *http.Request) {
	var req models.SeoSettingInput
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	s, err := h.svc.SaveSeo(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, s)
}
