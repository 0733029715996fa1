package handlers

import (
	"net/http"
	"time"

	"formulator/internal/config"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *services.AuthService
	cookieName   string
	cookieSecure bool
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cfg.SessionCookie,
		cookieSecure: cfg.CookieSecure,
	}
}

// Login godoc
// @Summary Вход в админку
// @Description Возвращает токен в теле и в HttpOnly cookie. Неверный email и неверный пароль дают одинаковую ошибку.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.LoginRequest true "Email и пароль"
// @Success 200 {object} helpers.Response{data=models.LoginResponse}
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response
// @Failure 429 {object} helpers.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(resp.Token, resp.ExpiresAt))
	logger.WithCtx(r.Context()).Info("Успешный вход", zap.String("user_id", resp.User.ID))
	helpers.JSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary Выход
// @Description Сбрасывает cookie сессии. Токен живёт до истечения срока.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c := h.sessionCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	helpers.Message(w, http.StatusOK, "Вы вышли из системы")
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.Response{data=models.User}
// @Failure 401 {object} helpers.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.authService.Me(r.Context())
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, u)
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
