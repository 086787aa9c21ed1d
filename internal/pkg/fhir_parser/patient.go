package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

func extractPatient(node gjson.Result) fhir_dto.Patient {
	return fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient.String(),
		ID:           String(node, "id"),
		Identifier:   BuildIdentifiers(node, "identifier"),
		Name:         []fhir_dto.HumanName{BuildHumanName(First(node, "name"), nil)},
		Gender:       String(node, "gender"),
		BirthDate:    String(node, "birthDate"),
		Telecom:      BuildContactPoints(node, "telecom"),
	}
}
