package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

func extractMedicationRequest(node gjson.Result) fhir_dto.MedicationRequest {
	return fhir_dto.MedicationRequest{
		ResourceType:              constvars.ResourceMedicationRequest.String(),
		ID:                        String(node, "id"),
		Status:                    String(node, "status"),
		Intent:                    String(node, "intent"),
		MedicationCodeableConcept: BuildCodeableConcept(node.Get("medicationCodeableConcept")),
		Subject:                   BuildReference(node.Get("subject")),
		Encounter:                 BuildOptionalReference(node, "encounter"),
		AuthoredOn:                String(node, "authoredOn"),
		Requester:                 BuildOptionalReference(node, "requester"),
		DosageInstruction:         buildDosageInstructions(node),
		DispenseRequest:           buildDispenseRequest(node),
	}
}

func buildDosageInstructions(node gjson.Result) []fhir_dto.DosageInstruction {
	instructions := []fhir_dto.DosageInstruction{}
	for _, element := range Objects(node, "dosageInstruction") {
		instructions = append(instructions, fhir_dto.DosageInstruction{
			Text:        String(element, "text"),
			Timing:      buildTiming(element),
			Route:       BuildOptionalCodeableConcept(element, "route"),
			DoseAndRate: buildDoseAndRate(element),
		})
	}
	return instructions
}

func buildTiming(node gjson.Result) *fhir_dto.Timing {
	timing, ok := Object(node, "timing")
	if !ok {
		return nil
	}
	result := &fhir_dto.Timing{}
	if repeat, ok := Object(timing, "repeat"); ok {
		result.Repeat = &fhir_dto.TimingRepeat{
			Frequency:    Int(repeat, "frequency"),
			Period:       Float(repeat, "period"),
			PeriodUnit:   String(repeat, "periodUnit"),
			Duration:     Float(repeat, "duration"),
			DurationUnit: String(repeat, "durationUnit"),
			BoundsPeriod: BuildOptionalPeriod(repeat, "boundsPeriod"),
		}
	}
	return result
}

func buildDoseAndRate(node gjson.Result) []fhir_dto.DoseAndRate {
	var doses []fhir_dto.DoseAndRate
	for _, element := range Objects(node, "doseAndRate") {
		doses = append(doses, fhir_dto.DoseAndRate{
			Type:         BuildOptionalCodeableConcept(element, "type"),
			DoseQuantity: BuildOptionalQuantity(element, "doseQuantity"),
		})
	}
	return doses
}

func buildDispenseRequest(node gjson.Result) *fhir_dto.DispenseRequest {
	dispense, ok := Object(node, "dispenseRequest")
	if !ok {
		return nil
	}
	return &fhir_dto.DispenseRequest{
		Quantity:               BuildQuantity(dispense.Get("quantity")),
		NumberOfRepeatsAllowed: Int(dispense, "numberOfRepeatsAllowed"),
	}
}
