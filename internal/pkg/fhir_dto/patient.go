package fhir_dto

import "ehr-bundle-service/internal/pkg/constvars"

type Patient struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id"`
	Identifier   []Identifier   `json:"identifier"`
	Name         []HumanName    `json:"name"`
	Gender       string         `json:"gender"`
	BirthDate    string         `json:"birthDate"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
}

func (Patient) ResourceKind() constvars.ResourceKind { return constvars.ResourcePatient }
func (p Patient) ResourceID() string                 { return p.ID }
func (Patient) isRecord()                            {}
