package fhir_dto

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var (
	ErrEntryWithoutResource = errors.New("bundle entry has no resource")
	ErrUnknownResourceKind  = errors.New("unknown resource kind")
)

// Bundle is the typed aggregate of one parsed clinical document. Entry order
// is document order and Signature is a single optional slot.
type Bundle struct {
	ResourceType string     `json:"resourceType"`
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Timestamp    string     `json:"timestamp"`
	Entry        []Entry    `json:"entry"`
	Signature    *Signature `json:"signature,omitempty"`
}

// Entry wraps exactly one record.
type Entry struct {
	Resource Record `json:"resource"`
}

func NewBundle(id, bundleType, timestamp string) *Bundle {
	return &Bundle{
		ResourceType: constvars.FhirResourceTypeBundle,
		ID:           id,
		Type:         bundleType,
		Timestamp:    timestamp,
		Entry:        []Entry{},
	}
}

func (b *Bundle) AddEntry(record Record) {
	b.Entry = append(b.Entry, Entry{Resource: record})
}

// AttachSignature fills the signature slot, replacing any previous one.
func (b *Bundle) AttachSignature(signature Signature) {
	b.Signature = &signature
}

func (b *Bundle) Records() []Record {
	records := make([]Record, 0, len(b.Entry))
	for _, entry := range b.Entry {
		records = append(records, entry.Resource)
	}
	return records
}

// FirstOf returns the first record of the given kind in document order.
func (b *Bundle) FirstOf(kind constvars.ResourceKind) (Record, bool) {
	for _, entry := range b.Entry {
		if entry.Resource != nil && entry.Resource.ResourceKind() == kind {
			return entry.Resource, true
		}
	}
	return nil, false
}

func (b *Bundle) CountByKind() map[constvars.ResourceKind]int {
	counts := make(map[constvars.ResourceKind]int, len(constvars.ResourceKinds))
	for _, kind := range constvars.ResourceKinds {
		counts[kind] = 0
	}
	for _, entry := range b.Entry {
		if entry.Resource != nil {
			counts[entry.Resource.ResourceKind()]++
		}
	}
	return counts
}

func (b *Bundle) PatientIDs() []string {
	return b.idsOf(constvars.ResourcePatient)
}

func (b *Bundle) PractitionerIDs() []string {
	return b.idsOf(constvars.ResourcePractitioner)
}

func (b *Bundle) idsOf(kind constvars.ResourceKind) []string {
	ids := []string{}
	for _, entry := range b.Entry {
		if entry.Resource == nil || entry.Resource.ResourceKind() != kind {
			continue
		}
		if id := entry.Resource.ResourceID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Resource Record `json:"resource"`
	}{Resource: e.Resource})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	resource := gjson.GetBytes(data, "resource")
	if !resource.IsObject() {
		return ErrEntryWithoutResource
	}
	raw := []byte(resource.Raw)

	kind := constvars.ResourceKind(resource.Get("resourceType").String())
	var (
		record Record
		err    error
	)
	switch kind {
	case constvars.ResourcePatient:
		record, err = decodeRecord[Patient](raw)
	case constvars.ResourcePractitioner:
		record, err = decodeRecord[Practitioner](raw)
	case constvars.ResourceEncounter:
		record, err = decodeRecord[Encounter](raw)
	case constvars.ResourceObservation:
		record, err = decodeRecord[Observation](raw)
	case constvars.ResourceCondition:
		record, err = decodeRecord[Condition](raw)
	case constvars.ResourceMedicationRequest:
		record, err = decodeRecord[MedicationRequest](raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
	if err != nil {
		return err
	}
	e.Resource = record
	return nil
}

func decodeRecord[T Record](raw []byte) (Record, error) {
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return record, nil
}
