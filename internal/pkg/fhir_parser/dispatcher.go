package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"fmt"

	"github.com/tidwall/gjson"
)

const (
	msgUnknownResourceType = "Unknown resource type: %s"
	msgMissingResource     = "Bundle entry %d has no resource"
)

// dispatch routes one bundle entry to its extractor. Entries that cannot be
// typed are reported to the sink and dropped.
func (p *Parser) dispatch(index int, entry gjson.Result) (fhir_dto.Record, bool) {
	resource, ok := Object(entry, "resource")
	if !ok {
		p.sink.Report(Diagnostic{
			Code:       DiagnosticMissingResource,
			EntryIndex: index,
			Message:    fmt.Sprintf(msgMissingResource, index),
		})
		return nil, false
	}

	kind := constvars.ResourceKind(String(resource, "resourceType"))
	switch kind {
	case constvars.ResourcePatient:
		return extractPatient(resource), true
	case constvars.ResourcePractitioner:
		return extractPractitioner(resource), true
	case constvars.ResourceEncounter:
		return extractEncounter(resource), true
	case constvars.ResourceObservation:
		return extractObservation(resource), true
	case constvars.ResourceCondition:
		return extractCondition(resource), true
	case constvars.ResourceMedicationRequest:
		return extractMedicationRequest(resource), true
	default:
		resourceType := kind.String()
		if resourceType == "" {
			resourceType = constvars.FhirResourceUnknown
		}
		p.sink.Report(Diagnostic{
			Code:         DiagnosticUnknownResourceKind,
			EntryIndex:   index,
			ResourceType: resourceType,
			Message:      fmt.Sprintf(msgUnknownResourceType, resourceType),
		})
		return nil, false
	}
}
