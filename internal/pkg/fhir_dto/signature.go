package fhir_dto

type Signature struct {
	Type      []Coding  `json:"type"`
	When      string    `json:"when"`
	Who       Reference `json:"who"`
	Data      string    `json:"data"`
	SigFormat string    `json:"sigFormat,omitempty"`
}
