package reports

const visitSummaryTemplate = `PATIENT VISIT SUMMARY & PRESCRIPTION
=====================================

{{ with .Patient -}}
PATIENT INFORMATION
-------------------
Name: {{ with .Name }}{{ with index . 0 }}{{ join " " .Given }} {{ .Family }}{{ end }}{{ else }}Unknown{{ end }}
Gender: {{ .Gender }}
Date of Birth: {{ .BirthDate }}
{{ with .Identifier }}MRN: {{ (index . 0).Value }}
{{ end -}}
{{ range .Telecom }}{{ .System }}: {{ .Value }}
{{ end }}
{{ end -}}
{{ with .Practitioner -}}
PRACTITIONER INFORMATION
------------------------
Doctor: {{ with .Name }}{{ with index . 0 }}{{ join " " .Prefix }} {{ join " " .Given }} {{ .Family }}{{ end }}{{ else }}Unknown{{ end }}
{{ with .Identifier }}NPI: {{ (index . 0).Value }}
{{ end }}
{{ end -}}
{{ with .Encounter -}}
VISIT DETAILS
-------------
Encounter ID: {{ .ID }}
Status: {{ .Status }}
Class: {{ .Class.Display }}
{{ with .ReasonCode }}{{ with (index . 0).Text }}Reason: {{ . }}
{{ end }}{{ end }}
{{ end -}}
{{ with .Observation -}}
OBSERVATIONS
------------
Type: {{ .Code.Text }}
{{ range .Component }}{{ .Code.Text }}: {{ quantity .ValueQuantity.Value }} {{ .ValueQuantity.Unit }}
{{ end -}}
{{ with .ValueQuantity }}Value: {{ quantity .Value }} {{ .Unit }}
{{ end }}
{{ end -}}
{{ with .Condition -}}
DIAGNOSIS
---------
Condition: {{ .Code.Text }}
Recorded Date: {{ timestamp .RecordedDate }}

{{ end -}}
{{ with .Medication -}}
PRESCRIPTION
------------
Medication: {{ .MedicationCodeableConcept.Text }}
Status: {{ .Status }}
Intent: {{ .Intent }}
Authored On: {{ timestamp .AuthoredOn }}
{{ with .DosageInstruction }}Instructions: {{ (index . 0).Text }}
{{ end }}
{{ end -}}
{{ with .Signature -}}
DIGITAL SIGNATURE
-----------------
Signed By: {{ .Who.Reference }}
Date: {{ timestamp .When }}
Signature Hash: {{ .Data }}
{{ end -}}
`
