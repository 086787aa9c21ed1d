package fhir_dto

import "ehr-bundle-service/internal/pkg/constvars"

type MedicationRequest struct {
	ResourceType              string              `json:"resourceType"`
	ID                        string              `json:"id"`
	Status                    string              `json:"status"`
	Intent                    string              `json:"intent"`
	MedicationCodeableConcept CodeableConcept     `json:"medicationCodeableConcept"`
	Subject                   Reference           `json:"subject"`
	Encounter                 *Reference          `json:"encounter,omitempty"`
	AuthoredOn                string              `json:"authoredOn"`
	Requester                 *Reference          `json:"requester,omitempty"`
	DosageInstruction         []DosageInstruction `json:"dosageInstruction"`
	DispenseRequest           *DispenseRequest    `json:"dispenseRequest,omitempty"`
}

type DosageInstruction struct {
	Text        string           `json:"text"`
	Timing      *Timing          `json:"timing,omitempty"`
	Route       *CodeableConcept `json:"route,omitempty"`
	DoseAndRate []DoseAndRate    `json:"doseAndRate,omitempty"`
}

type Timing struct {
	Repeat *TimingRepeat `json:"repeat,omitempty"`
}

type TimingRepeat struct {
	Frequency    int     `json:"frequency,omitempty"`
	Period       float64 `json:"period,omitempty"`
	PeriodUnit   string  `json:"periodUnit,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	DurationUnit string  `json:"durationUnit,omitempty"`
	BoundsPeriod *Period `json:"boundsPeriod,omitempty"`
}

type DoseAndRate struct {
	Type         *CodeableConcept `json:"type,omitempty"`
	DoseQuantity *Quantity        `json:"doseQuantity,omitempty"`
}

type DispenseRequest struct {
	Quantity               Quantity `json:"quantity"`
	NumberOfRepeatsAllowed int      `json:"numberOfRepeatsAllowed"`
}

func (MedicationRequest) ResourceKind() constvars.ResourceKind {
	return constvars.ResourceMedicationRequest
}
func (m MedicationRequest) ResourceID() string { return m.ID }
func (MedicationRequest) isRecord()            {}
