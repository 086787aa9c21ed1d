package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

func BuildCoding(node gjson.Result) fhir_dto.Coding {
	return fhir_dto.Coding{
		System:  String(node, "system"),
		Code:    String(node, "code"),
		Display: String(node, "display"),
	}
}

// BuildCodeableConcept keeps only the first coding. Coding and text default
// independently of each other.
func BuildCodeableConcept(node gjson.Result) fhir_dto.CodeableConcept {
	codings := []fhir_dto.Coding{}
	if first := First(node, "coding"); first.IsObject() {
		codings = append(codings, BuildCoding(first))
	}
	return fhir_dto.CodeableConcept{
		Coding: codings,
		Text:   String(node, "text"),
	}
}

func BuildCodeableConceptList(node gjson.Result, path string) []fhir_dto.CodeableConcept {
	concepts := []fhir_dto.CodeableConcept{}
	for _, element := range Objects(node, path) {
		concepts = append(concepts, BuildCodeableConcept(element))
	}
	return concepts
}

func BuildOptionalCodeableConcept(node gjson.Result, path string) *fhir_dto.CodeableConcept {
	object, ok := Object(node, path)
	if !ok {
		return nil
	}
	concept := BuildCodeableConcept(object)
	return &concept
}

func BuildCodingList(node gjson.Result, path string) []fhir_dto.Coding {
	codings := []fhir_dto.Coding{}
	for _, element := range Objects(node, path) {
		codings = append(codings, BuildCoding(element))
	}
	return codings
}

func BuildReference(node gjson.Result) fhir_dto.Reference {
	return fhir_dto.Reference{
		Reference: String(node, "reference"),
		Display:   String(node, "display"),
	}
}

func BuildOptionalReference(node gjson.Result, path string) *fhir_dto.Reference {
	object, ok := Object(node, path)
	if !ok {
		return nil
	}
	reference := BuildReference(object)
	return &reference
}

func BuildReferenceList(node gjson.Result, path string) []fhir_dto.Reference {
	references := []fhir_dto.Reference{}
	for _, element := range Objects(node, path) {
		references = append(references, BuildReference(element))
	}
	return references
}

func BuildQuantity(node gjson.Result) fhir_dto.Quantity {
	return fhir_dto.Quantity{
		Value:  Float(node, "value"),
		Unit:   String(node, "unit"),
		System: String(node, "system"),
		Code:   String(node, "code"),
	}
}

func BuildOptionalQuantity(node gjson.Result, path string) *fhir_dto.Quantity {
	object, ok := Object(node, path)
	if !ok {
		return nil
	}
	quantity := BuildQuantity(object)
	return &quantity
}

func BuildPeriod(node gjson.Result) fhir_dto.Period {
	return fhir_dto.Period{
		Start: String(node, "start"),
		End:   String(node, "end"),
	}
}

func BuildOptionalPeriod(node gjson.Result, path string) *fhir_dto.Period {
	object, ok := Object(node, path)
	if !ok {
		return nil
	}
	period := BuildPeriod(object)
	return &period
}

func BuildIdentifiers(node gjson.Result, path string) []fhir_dto.Identifier {
	identifiers := []fhir_dto.Identifier{}
	for _, element := range Objects(node, path) {
		identifiers = append(identifiers, fhir_dto.Identifier{
			System: String(element, "system"),
			Value:  String(element, "value"),
			Use:    String(element, "use"),
		})
	}
	return identifiers
}

// BuildHumanName reads one name node. An absent or empty prefix list falls
// back to defaultPrefix, which may be nil.
func BuildHumanName(node gjson.Result, defaultPrefix []string) fhir_dto.HumanName {
	use := String(node, "use")
	if use == "" {
		use = constvars.FhirNameUseOfficial
	}

	prefix := StringList(node, "prefix")
	if len(prefix) == 0 {
		prefix = nil
		if len(defaultPrefix) > 0 {
			prefix = append([]string(nil), defaultPrefix...)
		}
	}

	return fhir_dto.HumanName{
		Use:    use,
		Family: String(node, "family"),
		Given:  StringList(node, "given"),
		Prefix: prefix,
	}
}

// BuildContactPoints returns nil when the node carries no contact points.
func BuildContactPoints(node gjson.Result, path string) []fhir_dto.ContactPoint {
	var contacts []fhir_dto.ContactPoint
	for _, element := range Objects(node, path) {
		contacts = append(contacts, fhir_dto.ContactPoint{
			System: String(element, "system"),
			Value:  String(element, "value"),
			Use:    String(element, "use"),
		})
	}
	return contacts
}
