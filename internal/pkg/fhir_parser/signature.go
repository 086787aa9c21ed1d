package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

func extractSignature(node gjson.Result) fhir_dto.Signature {
	return fhir_dto.Signature{
		Type:      BuildCodingList(node, "type"),
		When:      String(node, "when"),
		Who:       BuildReference(node.Get("who")),
		Data:      String(node, "data"),
		SigFormat: String(node, "sigFormat"),
	}
}
