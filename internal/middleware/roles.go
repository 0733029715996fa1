package middleware

import (
	"net/http"

	"formulator/internal/models"
	"formulator/internal/reqctx"
	"formulator/internal/utils/helpers"
)

// Authenticated пропускает любой запрос с валидной сессией.
func Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := reqctx.GetIdentity(r.Context()); !ok {
			helpers.Error(w, http.StatusUnauthorized, "Требуется авторизация")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AnyRole пропускает сессии с одной из ролей. ADMIN проходит всегда.
func AnyRole(allowed ...models.Role) func(http.Handler) http.Handler {
	roleSet := make(map[models.Role]struct{}, len(allowed)+1)
	for _, r := range allowed {
		roleSet[r] = struct{}{}
	}
	roleSet[models.RoleAdmin] = struct{}{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := reqctx.GetIdentity(r.Context())
			if !ok {
				helpers.Error(w, http.StatusUnauthorized, "Требуется авторизация")
				return
			}
			if _, found := roleSet[id.Role]; !found {
				helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OnlyRole — AnyRole с одной ролью.
func OnlyRole(role models.Role) func(http.Handler) http.Handler {
	return AnyRole(role)
}
