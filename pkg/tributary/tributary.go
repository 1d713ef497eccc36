// Package tributary provides the public API for importing SRI electronic
// fiscal documents.
//
// It exposes the core types for unwrapping authorization envelopes,
// classifying the embedded comprobante as a factura or notaCredito and
// computing expense aggregates over a batch.
//
// Example usage:
//
//	invoice, creditNote, err := tributary.Parse("03-factura.xml", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(invoice.Info.Total)
package tributary

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/Bernix01/restos/internal/aggregate"
	"github.com/Bernix01/restos/internal/batch"
	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/parser"
	"github.com/Bernix01/restos/internal/validate"
)

// Re-export core types for public API
type (
	RawDocument = model.RawDocument
	Invoice     = model.Invoice
	CreditNote  = model.CreditNote
	TaxEntry    = model.TaxEntry
	TaxSet      = model.TaxSet
	ParseError  = model.ParseError
	ErrorKind   = model.ErrorKind
	Result      = batch.Result
	Summary     = aggregate.Summary
	Semester    = aggregate.Semester
)

// Re-export error kinds
const (
	KindInvalidEnvelope     = model.KindInvalidEnvelope
	KindInvalidMarkup       = model.KindInvalidMarkup
	KindUnknownDocumentType = model.KindUnknownDocumentType
	KindMonthMismatch       = model.KindMonthMismatch
	KindInvalidDate         = model.KindInvalidDate
	KindUnknown             = model.KindUnknown
)

// Re-export semesters
const (
	FirstSemester  = aggregate.FirstSemester
	SecondSemester = aggregate.SecondSemester
)

// Parse unwraps one authorization envelope, classifies the embedded
// comprobante and runs the invoice month check. Exactly one of the returned
// values is non-nil.
func Parse(fileName string, data []byte) (*Invoice, *CreditNote, error) {
	inv, cn, err := parser.Parse(fileName, data)
	if err != nil {
		return nil, nil, err
	}
	if inv != nil {
		if err := validate.InvoiceMonth(inv); err != nil {
			return nil, nil, err
		}
	}
	return inv, cn, nil
}

// Processor runs batches of authorization files.
type Processor struct {
	processor *batch.Processor
	logger    *log.Logger
}

// NewProcessor creates a batch processor. A nil logger uses the default.
func NewProcessor(logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{
		processor: batch.New(logger),
		logger:    logger,
	}
}

// Process parses every file into the three ordered partitions.
func (p *Processor) Process(ctx context.Context, files []RawDocument) *Result {
	return p.processor.Process(ctx, files)
}

// Summarize computes the dashboard aggregates over one import.
func (p *Processor) Summarize(result *Result) *Summary {
	return aggregate.Build(p.logger, result.Invoices, result.CreditNotes)
}
