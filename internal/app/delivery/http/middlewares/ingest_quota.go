package middlewares

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// IngestQuota meters requests by the subject Authenticate stored in the
// context. It must run after Authenticate. Limiter errors fail open.
func (m *Middlewares) IngestQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.QuotaLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		requestID := utils.GetRequestID(r.Context())
		subject, _ := r.Context().Value(constvars.CONTEXT_AUTH_SUBJECT_KEY).(string)

		decision, err := m.QuotaLimiter.Allow(r.Context(), subject)
		if err != nil {
			m.Log.Warn("Middlewares.IngestQuota limiter unavailable, admitting request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		if !decision.Allowed {
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(decision.RetryAfterSecs))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrIngestQuotaExceeded(nil, subject, decision.RetryAfterSecs))
			return
		}
		next.ServeHTTP(w, r)
	})
}
