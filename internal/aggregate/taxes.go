package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/money"
)

// DistinctRates returns every tarifa appearing in any tax entry of the given
// invoices, deduplicated, ascending. The result drives every per-rate
// breakdown of a batch: it is computed once and reused so all buckets report
// over the same rate set.
func DistinctRates(invoices []*model.Invoice) []decimal.Decimal {
	seen := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		for _, item := range inv.Items {
			for _, tax := range item.Taxes {
				seen[tax.Rate.String()] = tax.Rate
			}
		}
	}

	rates := make([]decimal.Decimal, 0, len(seen))
	for _, r := range seen {
		rates = append(rates, r)
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].LessThan(rates[j]) })
	return rates
}

// InvoiceTaxBase sums the taxable base of every tax entry carrying the given
// rate, across all line items. A rate absent from the invoice sums to zero.
func InvoiceTaxBase(inv *model.Invoice, rate decimal.Decimal) decimal.Decimal {
	total := money.Zero
	for _, item := range inv.Items {
		for _, tax := range item.Taxes {
			if tax.Rate.Equal(rate) {
				total = total.Add(tax.TaxableBase)
			}
		}
	}
	return total
}

// InvoiceTaxableBase sums the taxable base of every tax entry regardless of
// rate.
func InvoiceTaxableBase(inv *model.Invoice) decimal.Decimal {
	total := money.Zero
	for _, item := range inv.Items {
		for _, tax := range item.Taxes {
			total = total.Add(tax.TaxableBase)
		}
	}
	return total
}

// InvoiceTaxPaid sums the tax value of every tax entry.
func InvoiceTaxPaid(inv *model.Invoice) decimal.Decimal {
	total := money.Zero
	for _, item := range inv.Items {
		for _, tax := range item.Taxes {
			total = total.Add(tax.Value)
		}
	}
	return total
}

// CreditNoteTaxBase is InvoiceTaxBase for credit notes. Line items carrying
// the empty tax variant contribute nothing; only the list variant is
// reduced.
func CreditNoteTaxBase(cn *model.CreditNote, rate decimal.Decimal) decimal.Decimal {
	total := money.Zero
	for _, item := range cn.Items {
		if item.Taxes.Empty() {
			continue
		}
		for _, tax := range item.Taxes.Entries() {
			if tax.Rate.Equal(rate) {
				total = total.Add(tax.TaxableBase)
			}
		}
	}
	return total
}

// CreditNoteTaxableBase sums the taxable base across all rates, skipping
// empty-variant lines.
func CreditNoteTaxableBase(cn *model.CreditNote) decimal.Decimal {
	total := money.Zero
	for _, item := range cn.Items {
		if item.Taxes.Empty() {
			continue
		}
		for _, tax := range item.Taxes.Entries() {
			total = total.Add(tax.TaxableBase)
		}
	}
	return total
}
