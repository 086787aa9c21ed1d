package reports

import (
	"bytes"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"ehr-bundle-service/internal/pkg/utils"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

type visitSummaryRenderer struct {
	template *template.Template
}

type visitSummary struct {
	Patient      *fhir_dto.Patient
	Practitioner *fhir_dto.Practitioner
	Encounter    *fhir_dto.Encounter
	Observation  *fhir_dto.Observation
	Condition    *fhir_dto.Condition
	Medication   *fhir_dto.MedicationRequest
	Signature    *fhir_dto.Signature
}

func NewVisitSummaryRenderer() contracts.ReportRenderer {
	funcs := sprig.TxtFuncMap()
	funcs["quantity"] = formatQuantity
	funcs["timestamp"] = utils.FormatTimestamp

	return &visitSummaryRenderer{
		template: template.Must(template.New("visit_summary").Funcs(funcs).Parse(visitSummaryTemplate)),
	}
}

// RenderVisitSummary renders the first record of each kind in document order.
// Sections whose kind is absent are left out.
func (r *visitSummaryRenderer) RenderVisitSummary(bundle *fhir_dto.Bundle) (string, error) {
	if bundle == nil {
		return "", fhir_dto.ErrNilBundle
	}

	var buffer bytes.Buffer
	err := r.template.Execute(&buffer, newVisitSummary(bundle))
	if err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func newVisitSummary(bundle *fhir_dto.Bundle) visitSummary {
	summary := visitSummary{Signature: bundle.Signature}

	if record, ok := bundle.FirstOf(constvars.ResourcePatient); ok {
		patient := record.(fhir_dto.Patient)
		summary.Patient = &patient
	}
	if record, ok := bundle.FirstOf(constvars.ResourcePractitioner); ok {
		practitioner := record.(fhir_dto.Practitioner)
		summary.Practitioner = &practitioner
	}
	if record, ok := bundle.FirstOf(constvars.ResourceEncounter); ok {
		encounter := record.(fhir_dto.Encounter)
		summary.Encounter = &encounter
	}
	if record, ok := bundle.FirstOf(constvars.ResourceObservation); ok {
		observation := record.(fhir_dto.Observation)
		summary.Observation = &observation
	}
	if record, ok := bundle.FirstOf(constvars.ResourceCondition); ok {
		condition := record.(fhir_dto.Condition)
		summary.Condition = &condition
	}
	if record, ok := bundle.FirstOf(constvars.ResourceMedicationRequest); ok {
		medication := record.(fhir_dto.MedicationRequest)
		summary.Medication = &medication
	}
	return summary
}

func formatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
