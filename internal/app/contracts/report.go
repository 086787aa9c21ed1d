package contracts

import "ehr-bundle-service/internal/pkg/fhir_dto"

type ReportRenderer interface {
	RenderVisitSummary(bundle *fhir_dto.Bundle) (string, error)
}
