package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernix01/restos/internal/export"
	"github.com/Bernix01/restos/internal/model"
)

func testInvoice() *model.Invoice {
	return &model.Invoice{
		FileName: "03-a.xml",
		Tributary: model.TributaryInfo{
			Establishment: "002",
			EmissionPoint: "101",
			Sequence:      "000012345",
		},
		Info: model.InvoiceInfo{
			IssueDate: "01/04/2023",
			BuyerID:   "1790016919001",
			Subtotal:  decimal.NewFromInt(100),
			Total:     decimal.NewFromInt(112),
		},
		Items: []model.LineItem{
			{Taxes: []model.TaxEntry{{
				Code:        "2",
				Rate:        decimal.NewFromInt(12),
				TaxableBase: decimal.NewFromInt(100),
				Value:       decimal.NewFromInt(12),
			}}},
		},
	}
}

func TestFromInvoice(t *testing.T) {
	r := export.FromInvoice(testInvoice(), "importer")

	assert.Equal(t, "002-101-000012345", r.InvoiceNumber)
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), r.InvoiceDate)
	assert.True(t, r.TotalAmount.Equal(decimal.NewFromInt(112)))
	assert.True(t, r.SubtotalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, r.TotalTax.Equal(decimal.NewFromInt(12)))
	assert.True(t, r.IsRUC)
	assert.Equal(t, "importer", r.CreatedBy)
}

func TestFromInvoice_CedulaBuyerIsNotRUC(t *testing.T) {
	inv := testInvoice()
	inv.Info.BuyerID = "1712345678"

	r := export.FromInvoice(inv, "")
	assert.False(t, r.IsRUC)
}

func TestFromInvoice_UnreadableDateStaysZero(t *testing.T) {
	inv := testInvoice()
	inv.Info.IssueDate = "garbage"

	r := export.FromInvoice(inv, "")
	assert.True(t, r.InvoiceDate.IsZero())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	records := []export.InvoiceRecord{
		export.FromInvoice(testInvoice(), "importer"),
	}
	require.NoError(t, export.WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "invoice_number", rows[0][0])
	assert.Equal(t, "002-101-000012345", rows[1][0])
	assert.Equal(t, "2023-04-01", rows[1][1])
	assert.Equal(t, "112", rows[1][2])
	assert.Equal(t, "true", rows[1][5])
	assert.Equal(t, "importer", rows[1][6])
}

func TestWriteCSV_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
