package aggregate_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernix01/restos/internal/aggregate"
	"github.com/Bernix01/restos/internal/model"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func summaryInvoice(file, buyerID, issueDate string, total float64, entries ...model.TaxEntry) *model.Invoice {
	return &model.Invoice{
		FileName: file,
		Info: model.InvoiceInfo{
			BuyerID:   buyerID,
			IssueDate: issueDate,
			Total:     decimal.NewFromFloat(total),
		},
		Items: []model.LineItem{
			{Description: "item", Taxes: entries},
		},
	}
}

func TestBuild(t *testing.T) {
	invoices := []*model.Invoice{
		summaryInvoice("03-a.xml", "1790016919001", "01/04/2023", 112, tax(12, 100, 12)),
		summaryInvoice("03-b.xml", "1712345678", "15/04/2023", 56, tax(12, 50, 6)),
		summaryInvoice("08-c.xml", "0992345678001", "01/09/2023", 40, tax(0, 40, 0)),
	}
	creditNotes := []*model.CreditNote{
		{
			FileName: "04-d.xml",
			Info:     model.CreditNoteInfo{BuyerID: "1790016919001", IssueDate: "15/05/2023", ModificationValue: decimal.NewFromInt(56)},
			Items: []model.CreditLineItem{
				{Taxes: model.NewTaxSet([]model.TaxEntry{tax(12, 50, 6)})},
			},
		},
	}

	s := aggregate.Build(testLogger(), invoices, creditNotes)
	require.NotNil(t, s)

	assert.Equal(t, 4, s.FilesImported)
	assert.Equal(t, 3, s.InvoiceCount)
	assert.Equal(t, 1, s.CreditNoteCount)

	assert.Equal(t, "208", s.Total.String())
	assert.Equal(t, "152", s.BusinessTotal.String())
	assert.Equal(t, "56", s.PersonalTotal.String())

	require.NotNil(t, s.Average)
	assert.Equal(t, "69.33", s.Average.String())
	require.NotNil(t, s.BusinessAverage)
	assert.Equal(t, "76", s.BusinessAverage.String())

	assert.Equal(t, "18", s.TaxPaid.String())
	assert.Equal(t, "12", s.BusinessTaxPaid.String())
	assert.Equal(t, "6", s.PersonalTaxPaid.String())

	// Rates are computed once for the whole batch, ascending.
	require.Len(t, s.Rates, 2)
	assert.Equal(t, "0", s.Rates[0].String())
	assert.Equal(t, "12", s.Rates[1].String())

	require.Len(t, s.RateBreakdowns, 2)
	assert.Equal(t, "40", s.RateBreakdowns[0].BusinessBase.String())
	assert.Equal(t, "100", s.RateBreakdowns[1].BusinessBase.String())
	assert.Equal(t, "50", s.RateBreakdowns[1].PersonalBase.String())

	// Semester cards cover the business bucket.
	assert.Equal(t, 1, s.InvoiceSemesters.FirstCount)
	assert.Equal(t, 1, s.InvoiceSemesters.SecondCount)
	assert.Equal(t, "100", s.InvoiceSemesters.FirstBase.String())
	assert.Equal(t, "40", s.InvoiceSemesters.SecondBase.String())
	assert.Equal(t, "140", s.InvoiceSemesters.TotalBase.String())
	assert.Empty(t, s.InvoiceSemesters.InvalidDates)

	assert.Equal(t, 1, s.CreditNoteSemesters.FirstCount)
	assert.Equal(t, 0, s.CreditNoteSemesters.SecondCount)
	assert.Equal(t, "50", s.CreditNoteSemesters.FirstBase.String())
}

func TestBuild_Empty(t *testing.T) {
	s := aggregate.Build(testLogger(), nil, nil)
	require.NotNil(t, s)

	assert.Equal(t, 0, s.FilesImported)
	assert.Equal(t, "0", s.Total.String())

	// Averages over nothing stay absent instead of reading as zero.
	assert.Nil(t, s.Average)
	assert.Nil(t, s.BusinessAverage)
	assert.Nil(t, s.PersonalAverage)

	assert.Empty(t, s.Rates)
	assert.Empty(t, s.RateBreakdowns)
}

func TestBuild_InvalidDatesSurfaceInSemesterCard(t *testing.T) {
	invoices := []*model.Invoice{
		summaryInvoice("03-good.xml", "1790016919001", "01/04/2023", 112, tax(12, 100, 12)),
		summaryInvoice("03-bad.xml", "0992345678001", "garbage", 10, tax(12, 10, 1.2)),
	}

	s := aggregate.Build(testLogger(), invoices, nil)

	assert.Equal(t, 1, s.InvoiceSemesters.FirstCount)
	assert.Equal(t, 0, s.InvoiceSemesters.SecondCount)
	require.Len(t, s.InvoiceSemesters.InvalidDates, 1)
	assert.Equal(t, "03-bad.xml", s.InvoiceSemesters.InvalidDates[0])

	// The unreadable date excludes the document from the period buckets but
	// not from the overall base.
	assert.Equal(t, "110", s.InvoiceSemesters.TotalBase.String())
}
