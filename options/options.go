// Package options defines the parse-time configuration surface shared by
// every container-format parser (hwp5, hwpx, hwp3) and the hwpdoc facade
// that dispatches to them. Keeping it separate from hwpdoc avoids an
// import cycle: hwp5/hwpx/hwp3 need the option values but must not import
// the facade package that imports them.
package options

import "github.com/sirupsen/logrus"

// ErrorMode controls how a parser reacts to recoverable malformed input.
type ErrorMode int

const (
	// Strict aborts parsing on the first error (default).
	Strict ErrorMode = iota
	// Lenient truncates/skips malformed sections and keeps going, logging
	// each recovery at Warn level instead of returning an error.
	Lenient
)

// ExtractMode limits how much of a document is materialized.
type ExtractMode int

const (
	// Full extracts text, structure, and resources (default).
	Full ExtractMode = iota
	// TextOnly skips resource extraction.
	TextOnly
	// StructureOnly skips resource extraction. Text runs are still
	// extracted; no parser omits them in this mode.
	StructureOnly
)

// ParseOptions configures a parse. The zero value is not the default;
// construct one with Default().
type ParseOptions struct {
	ErrorMode        ErrorMode
	ExtractMode      ExtractMode
	MemoryLimitByte  int64 // stored only; no parser checks it against the input size
	ExtractResources bool
	Logger           *logrus.Logger
}

// Default returns strict error handling, full extraction, resources
// included, logging discarded.
func Default() ParseOptions {
	return ParseOptions{ExtractResources: true}
}

func (o ParseOptions) WithLenient() ParseOptions       { o.ErrorMode = Lenient; return o }
func (o ParseOptions) WithStrict() ParseOptions        { o.ErrorMode = Strict; return o }
func (o ParseOptions) WithTextOnly() ParseOptions      { o.ExtractMode = TextOnly; return o }
func (o ParseOptions) WithStructureOnly() ParseOptions { o.ExtractMode = StructureOnly; return o }
func (o ParseOptions) WithoutResources() ParseOptions  { o.ExtractResources = false; return o }
func (o ParseOptions) WithMemoryLimitMB(mb int64) ParseOptions {
	o.MemoryLimitByte = mb * 1024 * 1024
	return o
}
func (o ParseOptions) WithLogger(l *logrus.Logger) ParseOptions { o.Logger = l; return o }

// Log returns the configured logger, or a discarding default logger when
// none was set — library code must never force output on an embedding
// caller.
func (o ParseOptions) Log() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
