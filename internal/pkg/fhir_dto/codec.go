package fhir_dto

import (
	"errors"

	"github.com/goccy/go-json"
)

var ErrNilBundle = errors.New("bundle is nil")

// MarshalBundle encodes a bundle for archival. Equal bundles always produce
// identical bytes.
func MarshalBundle(bundle *Bundle) ([]byte, error) {
	if bundle == nil {
		return nil, ErrNilBundle
	}
	return json.Marshal(bundle)
}

func UnmarshalBundle(data []byte) (*Bundle, error) {
	bundle := &Bundle{}
	if err := json.Unmarshal(data, bundle); err != nil {
		return nil, err
	}
	if bundle.Entry == nil {
		bundle.Entry = []Entry{}
	}
	return bundle, nil
}
