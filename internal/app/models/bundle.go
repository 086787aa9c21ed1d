package models

import (
	"ehr-bundle-service/internal/pkg/dto/responses"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"ehr-bundle-service/internal/pkg/utils"
	"time"
)

// BundleDocument is the persisted form of a validated bundle. Payload holds
// the canonical serialization, the other fields are indexed projections of it.
type BundleDocument struct {
	ID              string          `bson:"_id" json:"id"`
	Type            string          `bson:"type" json:"type"`
	Timestamp       string          `bson:"timestamp" json:"timestamp"`
	EntryCount      int             `bson:"entry_count" json:"entry_count"`
	PatientIDs      []string        `bson:"patient_ids" json:"patient_ids"`
	PractitionerIDs []string        `bson:"practitioner_ids" json:"practitioner_ids"`
	ResourceCounts  map[string]int  `bson:"resource_counts" json:"resource_counts"`
	Signed          bool            `bson:"signed" json:"signed"`
	Payload         string          `bson:"payload" json:"payload"`
	Digest          string          `bson:"digest" json:"digest"`
	Archive         *ArchiveReceipt `bson:"archive,omitempty" json:"archive,omitempty"`
	StoredAt        time.Time       `bson:"stored_at" json:"stored_at"`
}

func NewBundleDocument(bundle *fhir_dto.Bundle, storedAt time.Time) (*BundleDocument, error) {
	payload, err := fhir_dto.MarshalBundle(bundle)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for kind, count := range bundle.CountByKind() {
		counts[kind.String()] = count
	}

	return &BundleDocument{
		ID:              bundle.ID,
		Type:            bundle.Type,
		Timestamp:       bundle.Timestamp,
		EntryCount:      len(bundle.Entry),
		PatientIDs:      nonNilStrings(bundle.PatientIDs()),
		PractitionerIDs: nonNilStrings(bundle.PractitionerIDs()),
		ResourceCounts:  counts,
		Signed:          bundle.Signature != nil,
		Payload:         string(payload),
		Digest:          utils.SHA256Hex(payload),
		StoredAt:        storedAt,
	}, nil
}

func (d *BundleDocument) ConvertIntoBundle() (*fhir_dto.Bundle, error) {
	return fhir_dto.UnmarshalBundle([]byte(d.Payload))
}

type BundleStatistics struct {
	TotalBundles   int
	ResourceCounts map[string]int
}

func (s BundleStatistics) ConvertIntoResponse() responses.BundleStatistics {
	counts := s.ResourceCounts
	if counts == nil {
		counts = make(map[string]int)
	}
	return responses.BundleStatistics{
		TotalBundles:   s.TotalBundles,
		ResourceCounts: counts,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
