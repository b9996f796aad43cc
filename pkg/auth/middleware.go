package auth

import (
	"net/http"
	"strings"

	apperrors "github.com/chainsafe/vrsc-identity/pkg/app/errors"
	apphttp "github.com/chainsafe/vrsc-identity/pkg/app/http"
)

// Middleware rejects requests without a valid bearer token and stores the
// token subject in the request context.
func Middleware(v *HMACValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return apphttp.HandleError(func(w http.ResponseWriter, r *http.Request) error {
			token, ok := bearerToken(r)
			if !ok {
				return apperrors.UnAuthorizedError(nil, "missing bearer token")
			}
			claims, err := v.ValidateToken(token)
			if err != nil {
				return apperrors.UnAuthorizedError(err, "invalid bearer token")
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), claims.Subject)))
			return nil
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
