package contracts

import (
	"context"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/fhir_dto"
)

type ArchiveService interface {
	Archive(ctx context.Context, bundle *fhir_dto.Bundle) (*models.ArchiveReceipt, error)
	// Restore returns the decrypted bundle and the digest of its payload.
	Restore(ctx context.Context, receipt *models.ArchiveReceipt) (*fhir_dto.Bundle, string, error)
}
