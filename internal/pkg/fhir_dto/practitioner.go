package fhir_dto

import "ehr-bundle-service/internal/pkg/constvars"

type Practitioner struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id"`
	Identifier   []Identifier   `json:"identifier"`
	Name         []HumanName    `json:"name"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
}

func (Practitioner) ResourceKind() constvars.ResourceKind { return constvars.ResourcePractitioner }
func (p Practitioner) ResourceID() string                 { return p.ID }
func (Practitioner) isRecord()                            {}
