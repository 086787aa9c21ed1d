package contracts

import (
	"context"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/dto/requests"
	"ehr-bundle-service/internal/pkg/dto/responses"
	"ehr-bundle-service/internal/pkg/fhir_dto"
)

// BundleFetcher returns a previously validated bundle by its identifier.
type BundleFetcher interface {
	FindByID(ctx context.Context, bundleID string) (*fhir_dto.Bundle, error)
}

type BundleUsecase interface {
	BundleFetcher
	Ingest(ctx context.Context, raw []byte) (*responses.BundleIngestion, error)
	Validate(ctx context.Context, raw []byte) (*responses.BundleValidation, error)
	ListIDs(ctx context.Context, request *requests.Pagination) ([]string, int, error)
	Delete(ctx context.Context, bundleID string) error
	Search(ctx context.Context, request *requests.SearchBundles) (*responses.BundleSearch, error)
	Statistics(ctx context.Context) (*responses.BundleStatistics, error)
	RenderReport(ctx context.Context, bundleID string) (string, error)
	RestoreArchive(ctx context.Context, bundleID string) (*responses.BundleRestore, error)
}

// BundleRepository finders return nil, nil when nothing matches.
type BundleRepository interface {
	Store(ctx context.Context, document *models.BundleDocument) error
	FindByID(ctx context.Context, bundleID string) (*models.BundleDocument, error)
	ListIDs(ctx context.Context, offset, limit int) ([]string, int, error)
	Delete(ctx context.Context, bundleID string) (bool, error)
	FindIDsByPatientID(ctx context.Context, patientID string) ([]string, error)
	FindIDsByPractitionerID(ctx context.Context, practitionerID string) ([]string, error)
	Statistics(ctx context.Context) (*models.BundleStatistics, error)
	UpdateArchive(ctx context.Context, bundleID string, receipt *models.ArchiveReceipt) error
}
