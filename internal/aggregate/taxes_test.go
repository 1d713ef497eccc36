package aggregate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernix01/restos/internal/aggregate"
	"github.com/Bernix01/restos/internal/model"
)

func taxedInvoice(file string, entries ...model.TaxEntry) *model.Invoice {
	return &model.Invoice{
		FileName: file,
		Items: []model.LineItem{
			{Description: "item", Taxes: entries},
		},
	}
}

func tax(rate, base, value float64) model.TaxEntry {
	return model.TaxEntry{
		Code:        "2",
		Rate:        decimal.NewFromFloat(rate),
		TaxableBase: decimal.NewFromFloat(base),
		Value:       decimal.NewFromFloat(value),
	}
}

func TestDistinctRates(t *testing.T) {
	invoices := []*model.Invoice{
		taxedInvoice("03-a.xml", tax(12, 100, 12), tax(0, 50, 0)),
		taxedInvoice("03-b.xml", tax(15, 200, 30), tax(12, 80, 9.6)),
	}

	rates := aggregate.DistinctRates(invoices)
	require.Len(t, rates, 3)

	// Deduplicated and ascending.
	assert.Equal(t, "0", rates[0].String())
	assert.Equal(t, "12", rates[1].String())
	assert.Equal(t, "15", rates[2].String())
}

func TestDistinctRates_Empty(t *testing.T) {
	assert.Empty(t, aggregate.DistinctRates(nil))
	assert.Empty(t, aggregate.DistinctRates([]*model.Invoice{{FileName: "03-a.xml"}}))
}

func TestInvoiceTaxBase(t *testing.T) {
	inv := &model.Invoice{
		Items: []model.LineItem{
			{Taxes: []model.TaxEntry{tax(12, 100, 12)}},
			{Taxes: []model.TaxEntry{tax(12, 50, 6), tax(0, 30, 0)}},
		},
	}

	twelve := decimal.NewFromInt(12)
	assert.Equal(t, "150", aggregate.InvoiceTaxBase(inv, twelve).String())
	assert.Equal(t, "30", aggregate.InvoiceTaxBase(inv, decimal.Zero).String())

	// A rate absent from the invoice sums to zero.
	assert.Equal(t, "0", aggregate.InvoiceTaxBase(inv, decimal.NewFromInt(15)).String())
}

func TestInvoiceTaxableBaseAndPaid(t *testing.T) {
	inv := &model.Invoice{
		Items: []model.LineItem{
			{Taxes: []model.TaxEntry{tax(12, 100, 12)}},
			{Taxes: []model.TaxEntry{tax(0, 40, 0)}},
		},
	}
	assert.Equal(t, "140", aggregate.InvoiceTaxableBase(inv).String())
	assert.Equal(t, "12", aggregate.InvoiceTaxPaid(inv).String())
}

func TestCreditNoteTaxBase_SkipsEmptyVariant(t *testing.T) {
	cn := &model.CreditNote{
		Items: []model.CreditLineItem{
			{Taxes: model.NewTaxSet([]model.TaxEntry{tax(12, 100, 12)})},
			{Taxes: model.EmptyTaxSet()},
			{Taxes: model.NewTaxSet([]model.TaxEntry{tax(12, 25, 3)})},
		},
	}

	twelve := decimal.NewFromInt(12)
	assert.Equal(t, "125", aggregate.CreditNoteTaxBase(cn, twelve).String())
	assert.Equal(t, "125", aggregate.CreditNoteTaxableBase(cn).String())
}

func TestCreditNoteTaxBase_MixedVariants(t *testing.T) {
	cn := &model.CreditNote{
		Items: []model.CreditLineItem{
			{Taxes: model.EmptyTaxSet()},
			{Taxes: model.NewTaxSet([]model.TaxEntry{tax(12, 100, 12)})},
		},
	}
	assert.Equal(t, "100", aggregate.CreditNoteTaxBase(cn, decimal.NewFromInt(12)).String())
}

func TestCreditNoteTaxableBase_AllEmpty(t *testing.T) {
	cn := &model.CreditNote{
		Items: []model.CreditLineItem{
			{Taxes: model.EmptyTaxSet()},
			{Taxes: model.EmptyTaxSet()},
		},
	}
	assert.Equal(t, "0", aggregate.CreditNoteTaxableBase(cn).String())
}
