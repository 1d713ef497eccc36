package aggregate

import (
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/money"
)

// RateBreakdown is one per-rate row of the taxes card: taxable base split by
// buyer bucket.
type RateBreakdown struct {
	Rate         decimal.Decimal `json:"rate"`
	BusinessBase decimal.Decimal `json:"business_base"`
	PersonalBase decimal.Decimal `json:"personal_base"`
}

// SemesterRateBreakdown is one per-rate row of a semester card.
type SemesterRateBreakdown struct {
	Rate       decimal.Decimal `json:"rate"`
	FirstBase  decimal.Decimal `json:"first_semester_base"`
	SecondBase decimal.Decimal `json:"second_semester_base"`
}

// SemesterTotals is the semester subtotal card for one document collection.
type SemesterTotals struct {
	FirstCount   int                     `json:"first_semester_count"`
	SecondCount  int                     `json:"second_semester_count"`
	FirstBase    decimal.Decimal         `json:"first_semester_base"`
	SecondBase   decimal.Decimal         `json:"second_semester_base"`
	TotalBase    decimal.Decimal         `json:"total_base"`
	Rates        []SemesterRateBreakdown `json:"rates,omitempty"`
	InvalidDates []string                `json:"invalid_dates,omitempty"`
}

// Summary assembles every number the import dashboard renders. Averages are
// nil when the backing collection is empty (the NoData case) so they never
// surface as a bogus figure.
type Summary struct {
	FilesImported   int `json:"files_imported"`
	InvoiceCount    int `json:"invoice_count"`
	CreditNoteCount int `json:"credit_note_count"`

	Total         decimal.Decimal `json:"total"`
	BusinessTotal decimal.Decimal `json:"business_total"`
	PersonalTotal decimal.Decimal `json:"personal_total"`

	Average         *decimal.Decimal `json:"average,omitempty"`
	BusinessAverage *decimal.Decimal `json:"business_average,omitempty"`
	PersonalAverage *decimal.Decimal `json:"personal_average,omitempty"`

	TaxPaid         decimal.Decimal `json:"tax_paid"`
	BusinessTaxPaid decimal.Decimal `json:"business_tax_paid"`
	PersonalTaxPaid decimal.Decimal `json:"personal_tax_paid"`

	Rates          []decimal.Decimal `json:"rates"`
	RateBreakdowns []RateBreakdown   `json:"rate_breakdowns,omitempty"`

	InvoiceSemesters    SemesterTotals `json:"invoice_semesters"`
	CreditNoteSemesters SemesterTotals `json:"credit_note_semesters"`
}

// Build computes the full summary over one import. The distinct rate set is
// computed once here and reused for every breakdown so the buckets stay
// comparable. Documents with unreadable issuance dates are logged and
// reported in the semester cards instead of being silently bucketed.
func Build(logger *log.Logger, invoices []*model.Invoice, creditNotes []*model.CreditNote) *Summary {
	businessInvoices, personalInvoices := SplitBusiness(invoices)
	businessCreditNotes, _ := SplitBusiness(creditNotes)

	rates := DistinctRates(invoices)

	s := &Summary{
		FilesImported:   len(invoices) + len(creditNotes),
		InvoiceCount:    len(invoices),
		CreditNoteCount: len(creditNotes),
		Total:           TotalAmount(invoices),
		BusinessTotal:   TotalAmount(businessInvoices),
		PersonalTotal:   TotalAmount(personalInvoices),
		TaxPaid:         sumInvoiceTaxPaid(invoices),
		BusinessTaxPaid: sumInvoiceTaxPaid(businessInvoices),
		PersonalTaxPaid: sumInvoiceTaxPaid(personalInvoices),
		Rates:           rates,
	}

	s.Average = average(invoices)
	s.BusinessAverage = average(businessInvoices)
	s.PersonalAverage = average(personalInvoices)

	for _, rate := range rates {
		s.RateBreakdowns = append(s.RateBreakdowns, RateBreakdown{
			Rate:         rate,
			BusinessBase: sumInvoiceTaxBase(businessInvoices, rate),
			PersonalBase: sumInvoiceTaxBase(personalInvoices, rate),
		})
	}

	s.InvoiceSemesters = invoiceSemesters(logger, businessInvoices, rates)
	s.CreditNoteSemesters = creditNoteSemesters(logger, businessCreditNotes, rates)

	return s
}

// average returns nil for an empty collection (the ErrNoData case).
func average[D model.Document](docs []D) *decimal.Decimal {
	avg, err := AverageAmount(docs)
	if err != nil {
		return nil
	}
	return &avg
}

func sumInvoiceTaxPaid(invoices []*model.Invoice) decimal.Decimal {
	total := money.Zero
	for _, inv := range invoices {
		total = total.Add(InvoiceTaxPaid(inv))
	}
	return total
}

func sumInvoiceTaxBase(invoices []*model.Invoice, rate decimal.Decimal) decimal.Decimal {
	total := money.Zero
	for _, inv := range invoices {
		total = total.Add(InvoiceTaxBase(inv, rate))
	}
	return total
}

func sumCreditNoteTaxBase(notes []*model.CreditNote, rate decimal.Decimal) decimal.Decimal {
	total := money.Zero
	for _, cn := range notes {
		total = total.Add(CreditNoteTaxBase(cn, rate))
	}
	return total
}

func invoiceSemesters(logger *log.Logger, invoices []*model.Invoice, rates []decimal.Decimal) SemesterTotals {
	first, second, invalid := BySemester(invoices)

	t := SemesterTotals{
		FirstCount:  len(first),
		SecondCount: len(second),
	}
	for _, inv := range first {
		t.FirstBase = t.FirstBase.Add(InvoiceTaxableBase(inv))
	}
	for _, inv := range second {
		t.SecondBase = t.SecondBase.Add(InvoiceTaxableBase(inv))
	}
	for _, inv := range invoices {
		t.TotalBase = t.TotalBase.Add(InvoiceTaxableBase(inv))
	}
	for _, rate := range rates {
		t.Rates = append(t.Rates, SemesterRateBreakdown{
			Rate:       rate,
			FirstBase:  sumInvoiceTaxBase(first, rate),
			SecondBase: sumInvoiceTaxBase(second, rate),
		})
	}
	for _, inv := range invalid {
		logger.Warn("invoice has unreadable issuance date, excluded from semester buckets",
			"file", inv.FileName, "date", inv.Info.IssueDate)
		t.InvalidDates = append(t.InvalidDates, inv.FileName)
	}
	return t
}

func creditNoteSemesters(logger *log.Logger, notes []*model.CreditNote, rates []decimal.Decimal) SemesterTotals {
	first, second, invalid := BySemester(notes)

	t := SemesterTotals{
		FirstCount:  len(first),
		SecondCount: len(second),
	}
	for _, cn := range first {
		t.FirstBase = t.FirstBase.Add(CreditNoteTaxableBase(cn))
	}
	for _, cn := range second {
		t.SecondBase = t.SecondBase.Add(CreditNoteTaxableBase(cn))
	}
	for _, cn := range notes {
		t.TotalBase = t.TotalBase.Add(CreditNoteTaxableBase(cn))
	}
	for _, rate := range rates {
		t.Rates = append(t.Rates, SemesterRateBreakdown{
			Rate:       rate,
			FirstBase:  sumCreditNoteTaxBase(first, rate),
			SecondBase: sumCreditNoteTaxBase(second, rate),
		})
	}
	for _, cn := range invalid {
		logger.Warn("credit note has unreadable issuance date, excluded from semester buckets",
			"file", cn.FileName, "date", cn.Info.IssueDate)
		t.InvalidDates = append(t.InvalidDates, cn.FileName)
	}
	return t
}
