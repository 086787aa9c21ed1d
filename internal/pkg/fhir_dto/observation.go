package fhir_dto

import "ehr-bundle-service/internal/pkg/constvars"

type Observation struct {
	ResourceType      string                 `json:"resourceType"`
	ID                string                 `json:"id"`
	Status            string                 `json:"status"`
	Category          []CodeableConcept      `json:"category"`
	Code              CodeableConcept        `json:"code"`
	Subject           Reference              `json:"subject"`
	Encounter         *Reference             `json:"encounter,omitempty"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty"`
	Performer         []Reference            `json:"performer"`
	Component         []ObservationComponent `json:"component,omitempty"`
	ValueQuantity     *Quantity              `json:"valueQuantity,omitempty"`
}

type ObservationComponent struct {
	Code          CodeableConcept `json:"code"`
	ValueQuantity Quantity        `json:"valueQuantity"`
}

func (Observation) ResourceKind() constvars.ResourceKind { return constvars.ResourceObservation }
func (o Observation) ResourceID() string                 { return o.ID }
func (Observation) isRecord()                            {}
