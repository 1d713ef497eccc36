package server

import (
	"github.com/Bernix01/restos/internal/aggregate"
	"github.com/Bernix01/restos/internal/model"
)

// ImportResponse is the full import result: the three ordered partitions
// plus the dashboard summary.
type ImportResponse struct {
	Invoices    []*model.Invoice    `json:"invoices"`
	CreditNotes []*model.CreditNote `json:"credit_notes"`
	Errors      []*model.ParseError `json:"errors"`
	Summary     *aggregate.Summary  `json:"summary"`
}

// SummaryResponse carries the aggregates without the document payloads.
type SummaryResponse struct {
	Summary *aggregate.Summary  `json:"summary"`
	Errors  []*model.ParseError `json:"errors"`
}

// ParseResponse is the result of parsing a single envelope; exactly one of
// the two documents is set.
type ParseResponse struct {
	Invoice    *model.Invoice    `json:"invoice,omitempty"`
	CreditNote *model.CreditNote `json:"credit_note,omitempty"`
}
