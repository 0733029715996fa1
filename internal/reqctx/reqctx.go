// internal/reqctx/reqctx.go
package reqctx

import (
	"context"

	"formulator/internal/models"
)

type key int

const (
	keyRequestID key = iota
	keyIdentity
	keyIdentitySlot
)

// Identity — проверенная личность из сессионного токена.
type Identity struct {
	UserID string
	Role   models.Role
}

// Is сообщает, входит ли роль в список.
func (i Identity) Is(roles ...models.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}

// identitySlot живёт в контексте внешних middleware (лог, recover): личность,
// найденная глубже по цепочке, записывается и сюда.
type identitySlot struct {
	id *Identity
}

// WithIdentitySlot готовит контекст запроса к тому, что личность появится
// позже, во вложенном обработчике.
func WithIdentitySlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, keyIdentitySlot, &identitySlot{})
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	if slot, ok := ctx.Value(keyIdentitySlot).(*identitySlot); ok {
		slot.id = &id
	}
	return context.WithValue(ctx, keyIdentity, id)
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	if v, ok := ctx.Value(keyIdentity).(Identity); ok {
		return v, true
	}
	if slot, ok := ctx.Value(keyIdentitySlot).(*identitySlot); ok && slot.id != nil {
		return *slot.id, true
	}
	return Identity{}, false
}

// UserID возвращает id пользователя или пустую строку для анонимного запроса.
func UserID(ctx context.Context) string {
	id, _ := GetIdentity(ctx)
	return id.UserID
}
