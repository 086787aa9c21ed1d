package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

var practitionerDefaultPrefix = []string{constvars.FhirPractitionerPrefixDr}

func extractPractitioner(node gjson.Result) fhir_dto.Practitioner {
	return fhir_dto.Practitioner{
		ResourceType: constvars.ResourcePractitioner.String(),
		ID:           String(node, "id"),
		Identifier:   BuildIdentifiers(node, "identifier"),
		Name:         []fhir_dto.HumanName{BuildHumanName(First(node, "name"), practitionerDefaultPrefix)},
		Telecom:      BuildContactPoints(node, "telecom"),
	}
}
