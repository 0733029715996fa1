package middleware

import (
	"net/http"
	"strings"

	"formulator/internal/logger"
	"formulator/internal/reqctx"
	"formulator/internal/utils"

	"go.uber.org/zap"
)

// Session разбирает токен из "Authorization: Bearer" или из cookie и кладёт
// личность в контекст. Запрос без токена или с негодным токеном проходит
// дальше анонимным: отказ выносят AnyRole и Authenticated. База не читается.
func Session(secret, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" && cookieName != "" {
				if c, err := r.Cookie(cookieName); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.ParseToken(secret, raw)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("Session: неверный или просроченный токен", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := reqctx.WithIdentity(r.Context(), reqctx.Identity{UserID: claims.Subject, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
