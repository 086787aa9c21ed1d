package constvars

// ResourceKind is the closed set of record kinds a bundle entry can carry.
type ResourceKind string

const (
	ResourcePatient           ResourceKind = "Patient"
	ResourcePractitioner      ResourceKind = "Practitioner"
	ResourceEncounter         ResourceKind = "Encounter"
	ResourceObservation       ResourceKind = "Observation"
	ResourceCondition         ResourceKind = "Condition"
	ResourceMedicationRequest ResourceKind = "MedicationRequest"
)

// ResourceKinds lists every known kind in a stable order.
var ResourceKinds = []ResourceKind{
	ResourcePatient,
	ResourcePractitioner,
	ResourceEncounter,
	ResourceObservation,
	ResourceCondition,
	ResourceMedicationRequest,
}

func (k ResourceKind) String() string {
	return string(k)
}

const (
	FhirResourceTypeBundle = "Bundle"
	FhirResourceUnknown    = "Unknown"
)

const (
	FhirNameUseOfficial      = "official"
	FhirPractitionerPrefixDr = "Dr."
)
