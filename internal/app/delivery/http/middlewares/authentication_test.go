package middlewares

import (
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthenticate(t *testing.T) {
	testAPIKey := "test-api-key-12345"
	testSecret := "test-jwt-secret"

	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{APIKey: testAPIKey},
		JWT: config.AppJWT{Secret: testSecret, ExpTimeInHour: 1},
	})

	var subject string
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = r.Context().Value(constvars.CONTEXT_AUTH_SUBJECT_KEY).(string)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})
	handler := middlewares.Authenticate(testHandler)

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		subject = ""
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bundles", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		rr := serve(req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.AuthSubjectAPIKey, subject)
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bundles", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "invalid-api-key")

		rr := serve(req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, subject)
	})

	t.Run("Valid Bearer Token", func(t *testing.T) {
		token, err := utils.GenerateJWT("clinician-7", testSecret, 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/bundles/b1", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+token)

		rr := serve(req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "clinician-7", subject)
	})

	t.Run("Token Signed With Another Secret", func(t *testing.T) {
		token, err := utils.GenerateJWT("clinician-7", "another-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/bundles/b1", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+token)

		rr := serve(req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bundles", nil)

		rr := serve(req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.True(t, strings.Contains(rr.Body.String(), constvars.ErrClientNotAuthorized))
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})

	var requestID string
	handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = utils.GetRequestID(r.Context())
	}))

	t.Run("Generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, strings.HasPrefix(requestID, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, requestID, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Client Supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-1")

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "client-id-1", requestID)
	})
}

func TestErrorHandler(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})
	handler := middlewares.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, constvars.MIMEApplicationJSON, rr.Header().Get(constvars.HeaderContentType))
}

func TestBodyLimit(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{RequestBodyLimitInMegabyte: 1},
	})

	var readErr error
	handler := middlewares.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buffer := make([]byte, 2<<20)
		for readErr == nil {
			_, readErr = r.Body.Read(buffer)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 2<<20)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
}
