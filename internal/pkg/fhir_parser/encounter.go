package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

func extractEncounter(node gjson.Result) fhir_dto.Encounter {
	return fhir_dto.Encounter{
		ResourceType: constvars.ResourceEncounter.String(),
		ID:           String(node, "id"),
		Status:       String(node, "status"),
		Class:        BuildCoding(node.Get("class")),
		Type:         BuildCodeableConceptList(node, "type"),
		Subject:      BuildReference(node.Get("subject")),
		Participant:  buildParticipants(node),
		Period:       BuildPeriod(node.Get("period")),
		ReasonCode:   BuildCodeableConceptList(node, "reasonCode"),
	}
}

// Participants without an individual carry nothing we model and are dropped.
func buildParticipants(node gjson.Result) []fhir_dto.EncounterParticipant {
	participants := []fhir_dto.EncounterParticipant{}
	for _, element := range Objects(node, "participant") {
		individual, ok := Object(element, "individual")
		if !ok {
			continue
		}
		participants = append(participants, fhir_dto.EncounterParticipant{
			Individual: BuildReference(individual),
		})
	}
	return participants
}
