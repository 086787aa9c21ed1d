package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

func extractCondition(node gjson.Result) fhir_dto.Condition {
	return fhir_dto.Condition{
		ResourceType:       constvars.ResourceCondition.String(),
		ID:                 String(node, "id"),
		ClinicalStatus:     BuildOptionalCodeableConcept(node, "clinicalStatus"),
		VerificationStatus: BuildOptionalCodeableConcept(node, "verificationStatus"),
		Code:               BuildCodeableConcept(node.Get("code")),
		Subject:            BuildReference(node.Get("subject")),
		Encounter:          BuildOptionalReference(node, "encounter"),
		RecordedDate:       String(node, "recordedDate"),
		Asserter:           BuildOptionalReference(node, "asserter"),
	}
}
