package responses

import (
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"ehr-bundle-service/internal/pkg/fhir_parser"
)

type BundleSummary struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Timestamp       string         `json:"timestamp"`
	EntryCount      int            `json:"entry_count"`
	ResourceCounts  map[string]int `json:"resource_counts"`
	PatientIDs      []string       `json:"patient_ids"`
	PractitionerIDs []string       `json:"practitioner_ids"`
	Signed          bool           `json:"signed"`
}

type BundleArchive struct {
	ObjectName string `json:"object_name"`
	Digest     string `json:"digest"`
	Size       int64  `json:"size"`
}

type BundleIngestion struct {
	Summary        BundleSummary            `json:"summary"`
	SkippedEntries []fhir_parser.Diagnostic `json:"skipped_entries"`
	Archived       bool                     `json:"archived"`
	Archive        *BundleArchive           `json:"archive,omitempty"`
}

type BundleValidation struct {
	Valid          bool                     `json:"valid"`
	Summary        BundleSummary            `json:"summary"`
	Violations     []fhir_parser.Violation  `json:"violations"`
	SkippedEntries []fhir_parser.Diagnostic `json:"skipped_entries"`
}

type BundleSearch struct {
	PatientID      string   `json:"patient_id,omitempty"`
	PractitionerID string   `json:"practitioner_id,omitempty"`
	BundleIDs      []string `json:"bundle_ids"`
}

type BundleStatistics struct {
	TotalBundles   int            `json:"total_bundles"`
	ResourceCounts map[string]int `json:"resource_counts"`
}

type BundleRestore struct {
	Archive  BundleArchive    `json:"archive"`
	Verified bool             `json:"verified"`
	Bundle   *fhir_dto.Bundle `json:"bundle"`
}

func NewBundleSummary(bundle *fhir_dto.Bundle) BundleSummary {
	counts := make(map[string]int)
	for kind, count := range bundle.CountByKind() {
		counts[kind.String()] = count
	}
	return BundleSummary{
		ID:              bundle.ID,
		Type:            bundle.Type,
		Timestamp:       bundle.Timestamp,
		EntryCount:      len(bundle.Entry),
		ResourceCounts:  counts,
		PatientIDs:      bundle.PatientIDs(),
		PractitionerIDs: bundle.PractitionerIDs(),
		Signed:          bundle.Signature != nil,
	}
}
