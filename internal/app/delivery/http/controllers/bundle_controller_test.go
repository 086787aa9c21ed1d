package controllers

import (
	"context"
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/dto/requests"
	"ehr-bundle-service/internal/pkg/dto/responses"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBundleUsecase struct {
	mock.Mock
}

func (m *MockBundleUsecase) FindByID(ctx context.Context, bundleID string) (*fhir_dto.Bundle, error) {
	args := m.Called(ctx, bundleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Bundle), args.Error(1)
}

func (m *MockBundleUsecase) Ingest(ctx context.Context, raw []byte) (*responses.BundleIngestion, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BundleIngestion), args.Error(1)
}

func (m *MockBundleUsecase) Validate(ctx context.Context, raw []byte) (*responses.BundleValidation, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BundleValidation), args.Error(1)
}

func (m *MockBundleUsecase) ListIDs(ctx context.Context, request *requests.Pagination) ([]string, int, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Int(1), args.Error(2)
}

func (m *MockBundleUsecase) Delete(ctx context.Context, bundleID string) error {
	args := m.Called(ctx, bundleID)
	return args.Error(0)
}

func (m *MockBundleUsecase) Search(ctx context.Context, request *requests.SearchBundles) (*responses.BundleSearch, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BundleSearch), args.Error(1)
}

func (m *MockBundleUsecase) Statistics(ctx context.Context) (*responses.BundleStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BundleStatistics), args.Error(1)
}

func (m *MockBundleUsecase) RenderReport(ctx context.Context, bundleID string) (string, error) {
	args := m.Called(ctx, bundleID)
	return args.String(0), args.Error(1)
}

func (m *MockBundleUsecase) RestoreArchive(ctx context.Context, bundleID string) (*responses.BundleRestore, error) {
	args := m.Called(ctx, bundleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BundleRestore), args.Error(1)
}

type decodedResponse struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Data       json.RawMessage       `json:"data"`
	Pagination *responses.Pagination `json:"pagination"`
}

func newTestController(usecase *MockBundleUsecase) (*BundleController, *chi.Mux) {
	controller := NewBundleController(zap.NewNop(), usecase, &config.InternalConfig{
		App: config.App{RequestTimeoutInSeconds: 5},
	})

	router := chi.NewRouter()
	router.Route("/bundles", func(r chi.Router) {
		r.Post("/", controller.IngestBundle)
		r.Post("/validate", controller.ValidateBundle)
		r.Get("/", controller.ListBundleIDs)
		r.Get("/search", controller.SearchBundles)
		r.Get("/stats", controller.GetStatistics)
		r.Get("/{bundleID}", controller.FindBundleByID)
		r.Get("/{bundleID}/report", controller.RenderBundleReport)
		r.Get("/{bundleID}/archive", controller.RestoreBundleArchive)
		r.Delete("/{bundleID}", controller.DeleteBundleByID)
	})
	return controller, router
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) decodedResponse {
	t.Helper()
	var body decodedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestBundleController_IngestBundle(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		usecase := new(MockBundleUsecase)
		_, router := newTestController(usecase)

		raw := `{"resourceType":"Bundle","id":"b1"}`
		usecase.On("Ingest", mock.Anything, []byte(raw)).Return(&responses.BundleIngestion{
			Summary: responses.BundleSummary{ID: "b1", Type: "document"},
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/bundles", strings.NewReader(raw))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		body := decode(t, rr)
		assert.True(t, body.Success)
		assert.Equal(t, constvars.BundleIngestSuccessMessage, body.Message)

		var ingestion responses.BundleIngestion
		require.NoError(t, json.Unmarshal(body.Data, &ingestion))
		assert.Equal(t, "b1", ingestion.Summary.ID)
		usecase.AssertExpectations(t)
	})

	t.Run("Validation Failure Is Unprocessable", func(t *testing.T) {
		usecase := new(MockBundleUsecase)
		_, router := newTestController(usecase)

		usecase.On("Ingest", mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrBundleValidation(errors.New("4 violations"), 4))

		req := httptest.NewRequest(http.MethodPost, "/bundles", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		body := decode(t, rr)
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrClientBundleInvalid, body.Message)
	})

	t.Run("Body Too Large", func(t *testing.T) {
		usecase := new(MockBundleUsecase)
		controller, _ := newTestController(usecase)

		req := httptest.NewRequest(http.MethodPost, "/bundles", strings.NewReader(strings.Repeat("x", 64)))
		rr := httptest.NewRecorder()
		req.Body = http.MaxBytesReader(rr, req.Body, 8)
		controller.IngestBundle(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		usecase.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
	})

	t.Run("Deadline Exceeded", func(t *testing.T) {
		usecase := new(MockBundleUsecase)
		_, router := newTestController(usecase)

		usecase.On("Ingest", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

		req := httptest.NewRequest(http.MethodPost, "/bundles", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
	})
}

func TestBundleController_ValidateBundle(t *testing.T) {
	usecase := new(MockBundleUsecase)
	_, router := newTestController(usecase)

	usecase.On("Validate", mock.Anything, []byte(`{"id":"b1"}`)).Return(&responses.BundleValidation{
		Valid: true,
		Summary: responses.BundleSummary{
			ID: "b1",
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/bundles/validate", strings.NewReader(`{"id":"b1"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var validation responses.BundleValidation
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &validation))
	assert.True(t, validation.Valid)
}

func TestBundleController_ListBundleIDs(t *testing.T) {
	usecase := new(MockBundleUsecase)
	_, router := newTestController(usecase)

	usecase.On("ListIDs", mock.Anything, &requests.Pagination{Page: 2, PageSize: 2}).
		Return([]string{"b3", "b4"}, 5, nil)

	req := httptest.NewRequest(http.MethodGet, "/bundles?page=2&page_size=2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 5, body.Pagination.Total)
	assert.Equal(t, "/bundles?page=3&page_size=2", body.Pagination.NextURL)
	assert.Equal(t, "/bundles?page=1&page_size=2", body.Pagination.PrevURL)

	var ids []string
	require.NoError(t, json.Unmarshal(body.Data, &ids))
	assert.Equal(t, []string{"b3", "b4"}, ids)
}

func TestBundleController_SearchBundles(t *testing.T) {
	usecase := new(MockBundleUsecase)
	_, router := newTestController(usecase)

	usecase.On("Search", mock.Anything, &requests.SearchBundles{PatientID: "p1"}).
		Return(&responses.BundleSearch{PatientID: "p1", BundleIDs: []string{"b1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/bundles/search?patient_id=p1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var search responses.BundleSearch
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &search))
	assert.Equal(t, []string{"b1"}, search.BundleIDs)
}

func TestBundleController_GetStatistics(t *testing.T) {
	usecase := new(MockBundleUsecase)
	_, router := newTestController(usecase)

	usecase.On("Statistics", mock.Anything).Return(&responses.BundleStatistics{
		TotalBundles:   2,
		ResourceCounts: map[string]int{"Patient": 2},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/bundles/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var stats responses.BundleStatistics
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &stats))
	assert.Equal(t, 2, stats.TotalBundles)
	assert.Equal(t, 2, stats.ResourceCounts["Patient"])
}

func TestBundleController_FindBundleByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		usecase := new(MockBundleUsecase)
		_, router := newTestController(usecase)

		usecase.On("FindByID", mock.Anything, "b1").Return(&fhir_dto.Bundle{
			ResourceType: "Bundle",
			ID:           "b1",
			Type:         "document",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/bundles/b1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, string(decode(t, rr).Data), `"id":"b1"`)
	})

	t.Run("Not Found", func(t *testing.T) {
		usecase := new(MockBundleUsecase)
		_, router := newTestController(usecase)

		usecase.On("FindByID", mock.Anything, "missing").
			Return(nil, exceptions.ErrBundleNotFound(nil, "missing"))

		req := httptest.NewRequest(http.MethodGet, "/bundles/missing", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrClientBundleNotFound, decode(t, rr).Message)
	})
}

func TestBundleController_RenderBundleReport(t *testing.T) {
	usecase := new(MockBundleUsecase)
	_, router := newTestController(usecase)

	usecase.On("RenderReport", mock.Anything, "b1").Return("PATIENT VISIT SUMMARY & PRESCRIPTION\n", nil)

	req := httptest.NewRequest(http.MethodGet, "/bundles/b1/report", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.MIMETextPlainCharsetUTF8, rr.Header().Get(constvars.HeaderContentType))
	assert.Equal(t, "PATIENT VISIT SUMMARY & PRESCRIPTION\n", rr.Body.String())
}

func TestBundleController_RestoreBundleArchive(t *testing.T) {
	usecase := new(MockBundleUsecase)
	_, router := newTestController(usecase)

	usecase.On("RestoreArchive", mock.Anything, "b1").
		Return(nil, exceptions.ErrBundleArchiveMissing(nil, "b1"))

	req := httptest.NewRequest(http.MethodGet, "/bundles/b1/archive", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, constvars.ErrClientBundleArchiveNotFound, decode(t, rr).Message)
}

func TestBundleController_DeleteBundleByID(t *testing.T) {
	usecase := new(MockBundleUsecase)
	_, router := newTestController(usecase)

	usecase.On("Delete", mock.Anything, "b1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/bundles/b1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.BundleDeleteSuccessMessage, decode(t, rr).Message)
	usecase.AssertExpectations(t)
}
