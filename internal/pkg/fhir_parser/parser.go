package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedDocument is the only condition under which no bundle is produced.
var ErrMalformedDocument = errors.New("invalid FHIR bundle JSON")

type Parser struct {
	sink DiagnosticSink
}

func NewParser(sink DiagnosticSink) *Parser {
	if sink == nil {
		sink = NopSink()
	}
	return &Parser{sink: sink}
}

// Parse builds a bundle from raw JSON. Missing or mistyped fields are
// defaulted and undispatchable entries are dropped. An error is returned only
// when the document is not a JSON object.
func (p *Parser) Parse(raw []byte) (*fhir_dto.Bundle, error) {
	if !gjson.ValidBytes(raw) {
		return nil, exceptions.ErrBundleStructure(fmt.Errorf("%w: document is not valid JSON", ErrMalformedDocument))
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, exceptions.ErrBundleStructure(fmt.Errorf("%w: top level is not an object", ErrMalformedDocument))
	}

	bundle := fhir_dto.NewBundle(
		String(root, "id"),
		String(root, "type"),
		String(root, "timestamp"),
	)
	for index, entry := range Array(root, "entry") {
		if record, ok := p.dispatch(index, entry); ok {
			bundle.AddEntry(record)
		}
	}
	if signature, ok := Object(root, "signature"); ok {
		bundle.AttachSignature(extractSignature(signature))
	}
	return bundle, nil
}

// ParseAndValidate parses raw and, when a bundle was produced, validates it.
func (p *Parser) ParseAndValidate(raw []byte) (*fhir_dto.Bundle, []Violation, error) {
	bundle, err := p.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return bundle, ValidateBundle(bundle), nil
}
