package fhir_dto

import "ehr-bundle-service/internal/pkg/constvars"

type Encounter struct {
	ResourceType string                 `json:"resourceType"`
	ID           string                 `json:"id"`
	Status       string                 `json:"status"`
	Class        Coding                 `json:"class"`
	Type         []CodeableConcept      `json:"type"`
	Subject      Reference              `json:"subject"`
	Participant  []EncounterParticipant `json:"participant"`
	Period       Period                 `json:"period"`
	ReasonCode   []CodeableConcept      `json:"reasonCode"`
}

type EncounterParticipant struct {
	Individual Reference `json:"individual"`
}

func (Encounter) ResourceKind() constvars.ResourceKind { return constvars.ResourceEncounter }
func (e Encounter) ResourceID() string                 { return e.ID }
func (Encounter) isRecord()                            {}
