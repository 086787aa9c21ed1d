package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

func extractObservation(node gjson.Result) fhir_dto.Observation {
	return fhir_dto.Observation{
		ResourceType:      constvars.ResourceObservation.String(),
		ID:                String(node, "id"),
		Status:            String(node, "status"),
		Category:          BuildCodeableConceptList(node, "category"),
		Code:              BuildCodeableConcept(node.Get("code")),
		Subject:           BuildReference(node.Get("subject")),
		Encounter:         BuildOptionalReference(node, "encounter"),
		EffectiveDateTime: String(node, "effectiveDateTime"),
		Performer:         BuildReferenceList(node, "performer"),
		Component:         buildComponents(node),
		ValueQuantity:     BuildOptionalQuantity(node, "valueQuantity"),
	}
}

func buildComponents(node gjson.Result) []fhir_dto.ObservationComponent {
	var components []fhir_dto.ObservationComponent
	for _, element := range Objects(node, "component") {
		components = append(components, fhir_dto.ObservationComponent{
			Code:          BuildCodeableConcept(element.Get("code")),
			ValueQuantity: BuildQuantity(element.Get("valueQuantity")),
		})
	}
	return components
}
