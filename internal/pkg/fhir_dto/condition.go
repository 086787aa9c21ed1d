package fhir_dto

import "ehr-bundle-service/internal/pkg/constvars"

type Condition struct {
	ResourceType       string           `json:"resourceType"`
	ID                 string           `json:"id"`
	ClinicalStatus     *CodeableConcept `json:"clinicalStatus,omitempty"`
	VerificationStatus *CodeableConcept `json:"verificationStatus,omitempty"`
	Code               CodeableConcept  `json:"code"`
	Subject            Reference        `json:"subject"`
	Encounter          *Reference       `json:"encounter,omitempty"`
	RecordedDate       string           `json:"recordedDate"`
	Asserter           *Reference       `json:"asserter,omitempty"`
}

func (Condition) ResourceKind() constvars.ResourceKind { return constvars.ResourceCondition }
func (c Condition) ResourceID() string                 { return c.ID }
func (Condition) isRecord()                            {}
