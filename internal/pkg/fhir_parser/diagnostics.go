package fhir_parser

import (
	"ehr-bundle-service/internal/pkg/constvars"
	"io"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type DiagnosticCode string

const (
	DiagnosticUnknownResourceKind DiagnosticCode = "unknown_resource_kind"
	DiagnosticMissingResource     DiagnosticCode = "missing_resource"
)

// Diagnostic describes one entry the parser dropped without failing.
type Diagnostic struct {
	Code         DiagnosticCode `json:"code"`
	EntryIndex   int            `json:"entry_index"`
	ResourceType string         `json:"resource_type,omitempty"`
	Message      string         `json:"message"`
}

type DiagnosticSink interface {
	Report(diagnostic Diagnostic)
}

type nopSink struct{}

func (nopSink) Report(Diagnostic) {}

func NopSink() DiagnosticSink {
	return nopSink{}
}

type zapSink struct {
	Log *zap.Logger
}

func NewZapSink(logger *zap.Logger) DiagnosticSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapSink{Log: logger}
}

func (s *zapSink) Report(diagnostic Diagnostic) {
	s.Log.Warn(diagnostic.Message,
		zap.String(constvars.LoggingDiagnosticCodeKey, string(diagnostic.Code)),
		zap.Int(constvars.LoggingEntryIndexKey, diagnostic.EntryIndex),
		zap.String(constvars.LoggingResourceTypeKey, diagnostic.ResourceType),
	)
}

type logrusSink struct {
	Log *logrus.Logger
}

func NewLogrusSink(logger *logrus.Logger) DiagnosticSink {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &logrusSink{Log: logger}
}

func (s *logrusSink) Report(diagnostic Diagnostic) {
	s.Log.WithFields(logrus.Fields{
		constvars.LoggingDiagnosticCodeKey: diagnostic.Code,
		constvars.LoggingEntryIndexKey:     diagnostic.EntryIndex,
		constvars.LoggingResourceTypeKey:   diagnostic.ResourceType,
	}).Warn(diagnostic.Message)
}

// Recorder keeps every diagnostic of a single parse. It is not safe for
// concurrent use; give each parse its own Recorder.
type Recorder struct {
	diagnostics []Diagnostic
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(diagnostic Diagnostic) {
	r.diagnostics = append(r.diagnostics, diagnostic)
}

func (r *Recorder) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), r.diagnostics...)
}

func (r *Recorder) Len() int {
	return len(r.diagnostics)
}

type multiSink []DiagnosticSink

func MultiSink(sinks ...DiagnosticSink) DiagnosticSink {
	return multiSink(sinks)
}

func (m multiSink) Report(diagnostic Diagnostic) {
	for _, sink := range m {
		if sink != nil {
			sink.Report(diagnostic)
		}
	}
}
