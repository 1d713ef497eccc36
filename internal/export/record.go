// Package export maps parsed documents onto the relational invoice sink
// shape. The database itself is an external collaborator; this package only
// guarantees the mapping and a flat-file rendering of it.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Bernix01/restos/internal/aggregate"
	"github.com/Bernix01/restos/internal/model"
)

// rucLength is the size of a national taxpayer identification number.
const rucLength = 13

// InvoiceRecord is one row of the persistence sink.
type InvoiceRecord struct {
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceDate    time.Time       `json:"invoice_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	SubtotalAmount decimal.Decimal `json:"subtotal_amount"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	IsRUC          bool            `json:"is_ruc"`
	CreatedBy      string          `json:"created_by"`
}

// FromInvoice maps a parsed invoice onto the sink row. An unreadable
// issuance date leaves InvoiceDate zero; the parse has already surfaced the
// date elsewhere, the mapping stays total.
func FromInvoice(inv *model.Invoice, createdBy string) InvoiceRecord {
	date, _ := time.Parse("02/01/2006", inv.Info.IssueDate)
	return InvoiceRecord{
		InvoiceNumber:  inv.Number(),
		InvoiceDate:    date,
		TotalAmount:    inv.Info.Total,
		SubtotalAmount: inv.Info.Subtotal,
		TotalTax:       aggregate.InvoiceTaxPaid(inv),
		IsRUC:          len(inv.Info.BuyerID) == rucLength,
		CreatedBy:      createdBy,
	}
}

// WriteCSV renders records as CSV with a header row.
func WriteCSV(w io.Writer, records []InvoiceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"invoice_number", "invoice_date", "total_amount", "subtotal_amount", "total_tax", "is_ruc", "created_by"}); err != nil {
		return err
	}
	for _, r := range records {
		date := ""
		if !r.InvoiceDate.IsZero() {
			date = r.InvoiceDate.Format("2006-01-02")
		}
		isRUC := "false"
		if r.IsRUC {
			isRUC = "true"
		}
		row := []string{
			r.InvoiceNumber,
			date,
			r.TotalAmount.String(),
			r.SubtotalAmount.String(),
			r.TotalTax.String(),
			isRUC,
			r.CreatedBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
