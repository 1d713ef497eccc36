// Package batch orchestrates one import: every raw file runs through
// envelope extraction, classification and month validation, and the results
// are partitioned into invoices, credit notes and parse errors.
package batch

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/parser"
	"github.com/Bernix01/restos/internal/validate"
)

// Result holds the three output partitions of one import. Each partition
// preserves the relative order of the matching inputs, and every input
// lands in exactly one partition.
type Result struct {
	Invoices    []*model.Invoice    `json:"invoices"`
	CreditNotes []*model.CreditNote `json:"credit_notes"`
	Errors      []*model.ParseError `json:"errors"`
}

// Processor runs batches. Safe for concurrent use.
type Processor struct {
	logger  *log.Logger
	workers int
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers caps the number of files parsed concurrently.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a Processor.
func New(logger *log.Logger, opts ...Option) *Processor {
	p := &Processor{
		logger:  logger,
		workers: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// outcome is one file's result; exactly one field is set.
type outcome struct {
	invoice    *model.Invoice
	creditNote *model.CreditNote
	err        *model.ParseError
}

// Process parses every file and partitions the results. Files parse
// independently, so they run on a bounded worker pool writing into index
// slots; the final compaction walks the slots in input order, which keeps
// each partition stable.
func (p *Processor) Process(ctx context.Context, files []model.RawDocument) *Result {
	slots := make([]outcome, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			slots[i] = p.parseOne(f)
			return nil
		})
	}
	// Workers never return errors; failures are captured per slot.
	_ = g.Wait()

	result := &Result{
		Invoices:    make([]*model.Invoice, 0, len(files)),
		CreditNotes: make([]*model.CreditNote, 0),
		Errors:      make([]*model.ParseError, 0),
	}
	for _, o := range slots {
		switch {
		case o.invoice != nil:
			result.Invoices = append(result.Invoices, o.invoice)
		case o.creditNote != nil:
			result.CreditNotes = append(result.CreditNotes, o.creditNote)
		case o.err != nil:
			result.Errors = append(result.Errors, o.err)
		}
	}
	return result
}

// parseOne runs the full per-file pipeline. It never lets a failure escape:
// anything unexpected becomes an unknown-kind parse error for that file.
func (p *Processor) parseOne(f model.RawDocument) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic while parsing document", "file", f.FileName, "panic", r)
			o = outcome{err: model.NewParseError(model.KindUnknown, f.FileName, fmt.Sprintf("unexpected failure: %v", r), nil)}
		}
	}()

	inv, cn, err := parser.Parse(f.FileName, f.Bytes)
	if err != nil {
		pe := model.AsParseError(f.FileName, err)
		p.logger.Debug("document rejected", "file", f.FileName, "kind", pe.Kind, "error", pe.Message)
		return outcome{err: pe}
	}

	if inv != nil {
		if err := validate.InvoiceMonth(inv); err != nil {
			pe := model.AsParseError(f.FileName, err)
			p.logger.Debug("invoice failed month check", "file", f.FileName, "error", pe.Message)
			return outcome{err: pe}
		}
		return outcome{invoice: inv}
	}

	if cn != nil {
		// Known gap: the month consistency rule applies to invoices only.
		p.logger.Debug("month check skipped for credit note", "file", f.FileName)
		return outcome{creditNote: cn}
	}

	return outcome{err: model.NewParseError(model.KindUnknown, f.FileName, "parser produced no document and no error", nil)}
}
