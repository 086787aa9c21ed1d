package bundles

import (
	"context"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockBundleRepository struct {
	mock.Mock
}

func (m *MockBundleRepository) Store(ctx context.Context, document *models.BundleDocument) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockBundleRepository) FindByID(ctx context.Context, bundleID string) (*models.BundleDocument, error) {
	args := m.Called(ctx, bundleID)
	document, _ := args.Get(0).(*models.BundleDocument)
	return document, args.Error(1)
}

func (m *MockBundleRepository) ListIDs(ctx context.Context, offset, limit int) ([]string, int, error) {
	args := m.Called(ctx, offset, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Int(1), args.Error(2)
}

func (m *MockBundleRepository) Delete(ctx context.Context, bundleID string) (bool, error) {
	args := m.Called(ctx, bundleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBundleRepository) FindIDsByPatientID(ctx context.Context, patientID string) ([]string, error) {
	args := m.Called(ctx, patientID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockBundleRepository) FindIDsByPractitionerID(ctx context.Context, practitionerID string) ([]string, error) {
	args := m.Called(ctx, practitionerID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockBundleRepository) Statistics(ctx context.Context) (*models.BundleStatistics, error) {
	args := m.Called(ctx)
	statistics, _ := args.Get(0).(*models.BundleStatistics)
	return statistics, args.Error(1)
}

func (m *MockBundleRepository) UpdateArchive(ctx context.Context, bundleID string, receipt *models.ArchiveReceipt) error {
	args := m.Called(ctx, bundleID, receipt)
	return args.Error(0)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) Archive(ctx context.Context, bundle *fhir_dto.Bundle) (*models.ArchiveReceipt, error) {
	args := m.Called(ctx, bundle)
	receipt, _ := args.Get(0).(*models.ArchiveReceipt)
	return receipt, args.Error(1)
}

func (m *MockArchiveService) Restore(ctx context.Context, receipt *models.ArchiveReceipt) (*fhir_dto.Bundle, string, error) {
	args := m.Called(ctx, receipt)
	bundle, _ := args.Get(0).(*fhir_dto.Bundle)
	return bundle, args.String(1), args.Error(2)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *models.BundleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) RenderVisitSummary(bundle *fhir_dto.Bundle) (string, error) {
	args := m.Called(bundle)
	return args.String(0), args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}
