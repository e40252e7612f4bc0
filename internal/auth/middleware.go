package auth

import (
	"net/http"
	"strings"

	"stash/internal/services"
)

// Middleware rejects requests without a valid bearer token and attaches the
// authenticated owner to the request context for downstream handlers.
func (a *Authenticator) Middleware(reject func(w http.ResponseWriter, r *http.Request, err error), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			reject(w, r, services.Wrap(services.ErrUnauthorized, "auth", "middleware", "missing bearer token", nil))
			return
		}

		user, err := a.Verify(r.Context(), token)
		if err != nil {
			reject(w, r, err)
			return
		}

		ctx := services.WithOwner(r.Context(), user.ID, user.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
