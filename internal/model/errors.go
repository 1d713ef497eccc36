package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies per-document failures.
type ErrorKind string

const (
	// KindInvalidEnvelope: the outer authorization envelope could not be
	// parsed or carries no embedded comprobante.
	KindInvalidEnvelope ErrorKind = "invalid_envelope"
	// KindInvalidMarkup: the embedded comprobante is not well-formed XML.
	KindInvalidMarkup ErrorKind = "invalid_markup"
	// KindUnknownDocumentType: the comprobante root is neither factura nor
	// notaCredito.
	KindUnknownDocumentType ErrorKind = "unknown_document_type"
	// KindMonthMismatch: the issuance month contradicts the file naming
	// convention.
	KindMonthMismatch ErrorKind = "month_mismatch"
	// KindInvalidDate: an issuance date that cannot be read as DD/MM/YYYY.
	KindInvalidDate ErrorKind = "invalid_date"
	// KindUnknown: catch-all used by the batch orchestrator.
	KindUnknown ErrorKind = "unknown_error"
)

// ParseError is a per-document failure. It doubles as the flat
// {fileName, error} record surfaced to callers next to the parsed documents.
type ParseError struct {
	Kind     ErrorKind `json:"kind"`
	FileName string    `json:"file_name"`
	Message  string    `json:"error"`
	Cause    error     `json:"-"`
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Kind, e.FileName, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.FileName, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error.
func NewParseError(kind ErrorKind, fileName, message string, cause error) *ParseError {
	return &ParseError{
		Kind:     kind,
		FileName: fileName,
		Message:  message,
		Cause:    cause,
	}
}

// AsParseError coerces any failure into a *ParseError so the batch never
// propagates an unhandled error shape to its caller.
func AsParseError(fileName string, err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.FileName == "" {
			pe.FileName = fileName
		}
		return pe
	}
	return NewParseError(KindUnknown, fileName, err.Error(), err)
}

// ErrNoData guards aggregations that would otherwise divide by an empty
// collection.
var ErrNoData = errors.New("no data")
