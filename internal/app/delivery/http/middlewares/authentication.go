package middlewares

import (
	"context"
	"crypto/subtle"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate admits a request carrying the configured x-api-key or a valid
// HS256 bearer token. The authenticated subject is stored in the context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		if apiKey := r.Header.Get(constvars.HeaderXAPIKey); apiKey != "" {
			expected := m.InternalConfig.App.APIKey
			if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
				return
			}
			m.serveAuthenticated(w, r, next, constvars.AuthSubjectAPIKey, requestID)
			return
		}

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.HeaderBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		if m.InternalConfig.JWT.Secret == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.HeaderBearerPrefix))
		subject, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		m.serveAuthenticated(w, r, next, subject, requestID)
	})
}

func (m *Middlewares) serveAuthenticated(w http.ResponseWriter, r *http.Request, next http.Handler, subject, requestID string) {
	m.Log.Info("Request authenticated",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuthSubjectKey, subject),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
		zap.String(constvars.LoggingMethodKey, r.Method),
	)

	ctx := context.WithValue(r.Context(), constvars.CONTEXT_AUTH_SUBJECT_KEY, subject)
	next.ServeHTTP(w, r.WithContext(ctx))
}
