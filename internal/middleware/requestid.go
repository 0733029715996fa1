package middleware

import (
	"net/http"

	"formulator/internal/reqctx"

	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestID берёт id из заголовка или генерирует новый и кладёт его в контекст.
// Там же заводится слот личности: Session заполнит его, и Logging с Recoverer
// увидят пользователя.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, rid)
		ctx := reqctx.WithIdentitySlot(reqctx.WithRequestID(r.Context(), rid))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
