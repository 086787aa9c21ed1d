package reports

import (
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitBundle() *fhir_dto.Bundle {
	bundle := fhir_dto.NewBundle("bundle-1", "document", "2024-01-15T10:30:00Z")
	bundle.AddEntry(fhir_dto.Patient{
		ResourceType: "Patient",
		ID:           "patient-1",
		Identifier:   []fhir_dto.Identifier{{System: "http://hospital.org/mrn", Value: "MRN-001"}},
		Name:         []fhir_dto.HumanName{{Use: "official", Family: "Doe", Given: []string{"John", "Michael"}}},
		Gender:       "male",
		BirthDate:    "1980-01-15",
		Telecom:      []fhir_dto.ContactPoint{{System: "phone", Value: "555-0100"}},
	})
	bundle.AddEntry(fhir_dto.Practitioner{
		ResourceType: "Practitioner",
		ID:           "practitioner-1",
		Identifier:   []fhir_dto.Identifier{{System: "http://hl7.org/fhir/sid/us-npi", Value: "1234567890"}},
		Name:         []fhir_dto.HumanName{{Family: "Smith", Given: []string{"Sarah"}, Prefix: []string{"Dr."}}},
	})
	bundle.AddEntry(fhir_dto.Encounter{
		ResourceType: "Encounter",
		ID:           "encounter-1",
		Status:       "finished",
		Class:        fhir_dto.Coding{Code: "AMB", Display: "ambulatory"},
		ReasonCode:   []fhir_dto.CodeableConcept{{Coding: []fhir_dto.Coding{}, Text: "Annual checkup"}},
	})
	bundle.AddEntry(fhir_dto.Observation{
		ResourceType: "Observation",
		ID:           "observation-1",
		Code:         fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{}, Text: "Blood pressure"},
		Component: []fhir_dto.ObservationComponent{
			{Code: fhir_dto.CodeableConcept{Text: "Systolic"}, ValueQuantity: fhir_dto.Quantity{Value: 120, Unit: "mmHg"}},
			{Code: fhir_dto.CodeableConcept{Text: "Diastolic"}, ValueQuantity: fhir_dto.Quantity{Value: 80.5, Unit: "mmHg"}},
		},
	})
	bundle.AddEntry(fhir_dto.Condition{
		ResourceType: "Condition",
		ID:           "condition-1",
		Code:         fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{}, Text: "Hypertension"},
		RecordedDate: "2024-01-15",
	})
	bundle.AddEntry(fhir_dto.MedicationRequest{
		ResourceType:              "MedicationRequest",
		ID:                        "medication-1",
		Status:                    "active",
		Intent:                    "order",
		MedicationCodeableConcept: fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{}, Text: "Lisinopril 10mg"},
		AuthoredOn:                "2024-01-15T10:30:00Z",
		DosageInstruction:         []fhir_dto.DosageInstruction{{Text: "Take one tablet daily"}},
	})
	bundle.AttachSignature(fhir_dto.Signature{
		Type: []fhir_dto.Coding{},
		When: "2024-01-15T10:45:00Z",
		Who:  fhir_dto.Reference{Reference: "Practitioner/practitioner-1"},
		Data: "0xdeadbeef",
	})
	return bundle
}

func TestVisitSummaryRenderer(t *testing.T) {
	renderer := NewVisitSummaryRenderer()

	t.Run("Full Visit", func(t *testing.T) {
		document, err := renderer.RenderVisitSummary(visitBundle())
		require.NoError(t, err)

		expected := `PATIENT VISIT SUMMARY & PRESCRIPTION
=====================================

PATIENT INFORMATION
-------------------
Name: John Michael Doe
Gender: male
Date of Birth: 1980-01-15
MRN: MRN-001
phone: 555-0100

PRACTITIONER INFORMATION
------------------------
Doctor: Dr. Sarah Smith
NPI: 1234567890

VISIT DETAILS
-------------
Encounter ID: encounter-1
Status: finished
Class: ambulatory
Reason: Annual checkup

OBSERVATIONS
------------
Type: Blood pressure
Systolic: 120 mmHg
Diastolic: 80.5 mmHg

DIAGNOSIS
---------
Condition: Hypertension
Recorded Date: 2024-01-15

PRESCRIPTION
------------
Medication: Lisinopril 10mg
Status: active
Intent: order
Authored On: 2024-01-15 10:30:00 UTC
Instructions: Take one tablet daily

DIGITAL SIGNATURE
-----------------
Signed By: Practitioner/practitioner-1
Date: 2024-01-15 10:45:00 UTC
Signature Hash: 0xdeadbeef
`
		assert.Equal(t, expected, document)
	})

	t.Run("Empty Bundle", func(t *testing.T) {
		document, err := renderer.RenderVisitSummary(fhir_dto.NewBundle("b", "document", "t"))
		require.NoError(t, err)

		assert.Equal(t, "PATIENT VISIT SUMMARY & PRESCRIPTION\n=====================================\n\n", document)
	})

	t.Run("Patient Without Name Or Identifier", func(t *testing.T) {
		bundle := fhir_dto.NewBundle("b", "document", "t")
		bundle.AddEntry(fhir_dto.Patient{ResourceType: "Patient", ID: "p", Identifier: []fhir_dto.Identifier{}, Name: []fhir_dto.HumanName{}})

		document, err := renderer.RenderVisitSummary(bundle)
		require.NoError(t, err)

		assert.Contains(t, document, "Name: Unknown\n")
		assert.NotContains(t, document, "MRN:")
	})

	t.Run("Nil Bundle", func(t *testing.T) {
		_, err := renderer.RenderVisitSummary(nil)
		assert.ErrorIs(t, err, fhir_dto.ErrNilBundle)
	})
}
