package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated account id once the auth gate has
// resolved the request.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated account id, if any.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
