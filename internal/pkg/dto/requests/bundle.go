package requests

type SearchBundles struct {
	PatientID      string `json:"patient_id" validate:"required_without=PractitionerID"`
	PractitionerID string `json:"practitioner_id" validate:"required_without=PatientID"`
}
