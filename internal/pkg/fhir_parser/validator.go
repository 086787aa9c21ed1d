package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"strings"
)

const (
	RuleBundleIDRequired        = "bundle-id-required"
	RuleBundleTypeRequired      = "bundle-type-required"
	RuleBundleTimestampRequired = "bundle-timestamp-required"
	RuleBundleEntryRequired     = "bundle-entry-required"
)

type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type bundleRule struct {
	Violation
	violated func(bundle *fhir_dto.Bundle) bool
}

var bundleRules = []bundleRule{
	{
		Violation: Violation{Rule: RuleBundleIDRequired, Message: "Bundle ID is required"},
		violated:  func(b *fhir_dto.Bundle) bool { return b.ID == "" },
	},
	{
		Violation: Violation{Rule: RuleBundleTypeRequired, Message: "Bundle type is required"},
		violated:  func(b *fhir_dto.Bundle) bool { return b.Type == "" },
	},
	{
		Violation: Violation{Rule: RuleBundleTimestampRequired, Message: "Bundle timestamp is required"},
		violated:  func(b *fhir_dto.Bundle) bool { return b.Timestamp == "" },
	},
	{
		Violation: Violation{Rule: RuleBundleEntryRequired, Message: "Bundle must have at least one entry"},
		violated:  func(b *fhir_dto.Bundle) bool { return len(b.Entry) == 0 },
	},
}

// ValidateBundle evaluates every rule and returns all that fail, in rule
// order. A nil result means the bundle is complete.
func ValidateBundle(bundle *fhir_dto.Bundle) []Violation {
	if bundle == nil {
		bundle = &fhir_dto.Bundle{}
	}
	var violations []Violation
	for _, rule := range bundleRules {
		if rule.violated(bundle) {
			violations = append(violations, rule.Violation)
		}
	}
	return violations
}

// ViolationError carries a non-empty violation list as an error.
type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	return strings.Join(ViolationMessages(e.Violations), "; ")
}

func ViolationMessages(violations []Violation) []string {
	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, violation.Message)
	}
	return messages
}
