package archive

import (
	"context"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"ehr-bundle-service/internal/pkg/utils"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStorage struct {
	mock.Mock
	objects map[string][]byte
}

func newMockStorage() *mockStorage {
	return &mockStorage{objects: make(map[string][]byte)}
}

func (m *mockStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *mockStorage) PutObject(ctx context.Context, bucketName, objectName string, data []byte, contentType string) (int64, error) {
	args := m.Called(ctx, bucketName, objectName, data, contentType)
	if args.Error(1) == nil {
		m.objects[objectName] = append([]byte(nil), data...)
	}
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockStorage) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	args := m.Called(ctx, bucketName, objectName)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return m.objects[objectName], nil
}

func archivedBundle() *fhir_dto.Bundle {
	bundle := fhir_dto.NewBundle("bundle-1", "document", "2024-01-15T10:30:00Z")
	bundle.AddEntry(fhir_dto.Patient{
		ResourceType: "Patient",
		ID:           "patient-1",
		Identifier:   []fhir_dto.Identifier{},
		Name:         []fhir_dto.HumanName{{Use: "official", Family: "Doe", Given: []string{"John"}}},
		Gender:       "male",
		BirthDate:    "1980-01-15",
	})
	return bundle
}

func TestArchiveService(t *testing.T) {
	ctx := context.Background()

	t.Run("Archive Then Restore", func(t *testing.T) {
		storage := newMockStorage()
		storage.On("PutObject", ctx, "archive", mock.AnythingOfType("string"), mock.Anything, constvars.MIMEOctetStream).Return(512, nil)
		storage.On("GetObject", ctx, "archive", mock.AnythingOfType("string")).Return(nil)
		service := NewArchiveService(storage, "archive", "secret", zap.NewNop())

		bundle := archivedBundle()
		receipt, err := service.Archive(ctx, bundle)
		require.NoError(t, err)

		assert.Equal(t, "archive", receipt.Bucket)
		assert.True(t, strings.HasPrefix(receipt.ObjectName, "bundles/bundle-1/"))
		assert.True(t, strings.HasSuffix(receipt.ObjectName, ".bin"))
		assert.Equal(t, int64(512), receipt.Size)

		payload, err := fhir_dto.MarshalBundle(bundle)
		require.NoError(t, err)
		assert.Equal(t, utils.SHA256Hex(payload), receipt.Digest)
		assert.NotContains(t, string(storage.objects[receipt.ObjectName]), "patient-1")

		restored, digest, err := service.Restore(ctx, receipt)
		require.NoError(t, err)
		assert.Equal(t, bundle, restored)
		assert.Equal(t, receipt.Digest, digest)
		storage.AssertExpectations(t)
	})

	t.Run("Upload Failure", func(t *testing.T) {
		storage := newMockStorage()
		storage.On("PutObject", ctx, "archive", mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("unreachable"))
		service := NewArchiveService(storage, "archive", "secret", zap.NewNop())

		receipt, err := service.Archive(ctx, archivedBundle())
		assert.Error(t, err)
		assert.Nil(t, receipt)
	})

	t.Run("Wrong Key", func(t *testing.T) {
		storage := newMockStorage()
		storage.On("PutObject", ctx, "archive", mock.Anything, mock.Anything, mock.Anything).Return(1, nil)
		storage.On("GetObject", ctx, "archive", mock.Anything).Return(nil)

		receipt, err := NewArchiveService(storage, "archive", "secret", zap.NewNop()).Archive(ctx, archivedBundle())
		require.NoError(t, err)

		_, _, err = NewArchiveService(storage, "archive", "other", zap.NewNop()).Restore(ctx, receipt)
		assert.Error(t, err)
	})

	t.Run("Receipt Without Bucket", func(t *testing.T) {
		storage := newMockStorage()
		storage.On("GetObject", ctx, "archive", "missing").Return(errors.New("not found"))
		service := NewArchiveService(storage, "archive", "secret", zap.NewNop())

		_, _, err := service.Restore(ctx, &models.ArchiveReceipt{ObjectName: "missing"})
		assert.Error(t, err)
		storage.AssertExpectations(t)
	})
}
