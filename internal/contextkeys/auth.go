package contextkeys

import "context"

type authTokenKeyType struct{}

var authTokenKey = authTokenKeyType{}

// ContextWithAuthToken сохраняет bearer-токен администратора, который
// пробрасывается в бэкенд заявок.
func ContextWithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

func AuthTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(authTokenKey).(string); ok {
		return token
	}
	return ""
}
