package model

import (
	"github.com/shopspring/decimal"
)

// DocumentKind identifies the root element of an SRI comprobante.
type DocumentKind string

const (
	KindInvoice    DocumentKind = "factura"
	KindCreditNote DocumentKind = "notaCredito"
	KindUnknownDocument DocumentKind = "unknown"
)

// RawDocument is one file as handed over by the import surface: the original
// file name plus the authorization envelope bytes.
type RawDocument struct {
	FileName string `json:"file_name"`
	Bytes    []byte `json:"-"`
}

// TributaryInfo is the infoTributaria header shared by every comprobante.
// Establishment, EmissionPoint, Sequence and RUC carry significant leading
// zeros and are opaque identifiers; they stay strings.
type TributaryInfo struct {
	Environment       string `json:"environment"`
	EmissionType      string `json:"emission_type"`
	BusinessName      string `json:"business_name"`
	TradeName         string `json:"trade_name,omitempty"`
	RUC               string `json:"ruc"`
	AccessKey         string `json:"access_key"`
	DocumentCode      string `json:"document_code"`
	Establishment     string `json:"establishment"`
	EmissionPoint     string `json:"emission_point"`
	Sequence          string `json:"sequence"`
	HeadOfficeAddress string `json:"head_office_address,omitempty"`
}

// TaxEntry is one impuesto block inside a line item.
type TaxEntry struct {
	Code        string          `json:"code"`
	RateCode    string          `json:"rate_code"`
	Rate        decimal.Decimal `json:"rate"`
	TaxableBase decimal.Decimal `json:"taxable_base"`
	Value       decimal.Decimal `json:"value"`
}

// TaxTotal is one totalImpuesto block of the document-level tax summary.
type TaxTotal struct {
	Code               string          `json:"code"`
	RateCode           string          `json:"rate_code"`
	Rate               decimal.Decimal `json:"rate,omitempty"`
	AdditionalDiscount decimal.Decimal `json:"additional_discount,omitempty"`
	TaxableBase        decimal.Decimal `json:"taxable_base"`
	Value              decimal.Decimal `json:"value"`
}

// Payment is one pago block. Method and Term are catalog codes, kept textual.
type Payment struct {
	Method   string          `json:"method"`
	Total    decimal.Decimal `json:"total"`
	Term     string          `json:"term,omitempty"`
	TimeUnit string          `json:"time_unit,omitempty"`
}

// ExtraField is a campoAdicional or detAdicional name/value pair.
type ExtraField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OtherCharge is one rubro of otrosRubrosTerceros.
type OtherCharge struct {
	Concept string          `json:"concept"`
	Total   decimal.Decimal `json:"total"`
}

// LineItem is a factura detalle. Taxes is always a slice: the wire format
// does not distinguish one impuesto from a list of one, the decoder
// normalizes both to a list.
type LineItem struct {
	MainCode     string          `json:"main_code"`
	AuxCode      string          `json:"aux_code,omitempty"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Taxes        []TaxEntry      `json:"taxes"`
	ExtraDetails []ExtraField    `json:"extra_details,omitempty"`
}

// CreditLineItem is a notaCredito detalle. Unlike invoice lines its tax
// field is polymorphic on the wire; see TaxSet.
type CreditLineItem struct {
	InternalCode   string          `json:"internal_code"`
	AdditionalCode string          `json:"additional_code,omitempty"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount       decimal.Decimal `json:"discount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Taxes          TaxSet          `json:"taxes"`
	ExtraDetails   []ExtraField    `json:"extra_details,omitempty"`
}

// InvoiceInfo is the infoFactura block. IssueDate keeps the wire DD/MM/YYYY
// form; Tip (propina) is retained as text.
type InvoiceInfo struct {
	IssueDate            string          `json:"issue_date"`
	EstablishmentAddress string          `json:"establishment_address,omitempty"`
	SpecialTaxpayer      string          `json:"special_taxpayer,omitempty"`
	Bookkeeping          string          `json:"bookkeeping,omitempty"`
	BuyerIDType          string          `json:"buyer_id_type"`
	BuyerName            string          `json:"buyer_name"`
	BuyerID              string          `json:"buyer_id"`
	BuyerAddress         string          `json:"buyer_address,omitempty"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	TotalDiscount        decimal.Decimal `json:"total_discount"`
	TaxTotals            []TaxTotal      `json:"tax_totals"`
	Tip                  string          `json:"tip,omitempty"`
	Total                decimal.Decimal `json:"total"`
	Currency             string          `json:"currency,omitempty"`
	Payments             []Payment       `json:"payments,omitempty"`
	RemissionGuide       string          `json:"remission_guide,omitempty"`
}

// CreditNoteInfo is the infoNotaCredito block. It references the modified
// document instead of carrying payment terms.
type CreditNoteInfo struct {
	IssueDate            string          `json:"issue_date"`
	EstablishmentAddress string          `json:"establishment_address,omitempty"`
	SpecialTaxpayer      string          `json:"special_taxpayer,omitempty"`
	Bookkeeping          string          `json:"bookkeeping,omitempty"`
	BuyerIDType          string          `json:"buyer_id_type"`
	BuyerName            string          `json:"buyer_name"`
	BuyerID              string          `json:"buyer_id"`
	ModifiedDocCode      string          `json:"modified_doc_code"`
	ModifiedDocNumber    string          `json:"modified_doc_number"`
	SupportDocDate       string          `json:"support_doc_date,omitempty"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	ModificationValue    decimal.Decimal `json:"modification_value"`
	Currency             string          `json:"currency,omitempty"`
	TaxTotals            []TaxTotal      `json:"tax_totals"`
	Reason               string          `json:"reason"`
}

// Invoice is a parsed factura plus the originating file name. Immutable once
// produced by the parser.
type Invoice struct {
	FileName     string        `json:"file_name"`
	Tributary    TributaryInfo `json:"tributary"`
	Info         InvoiceInfo   `json:"info"`
	Items        []LineItem    `json:"items"`
	ExtraFields  []ExtraField  `json:"extra_fields,omitempty"`
	OtherCharges []OtherCharge `json:"other_charges,omitempty"`
}

// CreditNote is a parsed notaCredito plus the originating file name.
type CreditNote struct {
	FileName    string           `json:"file_name"`
	Tributary   TributaryInfo    `json:"tributary"`
	Info        CreditNoteInfo   `json:"info"`
	Items       []CreditLineItem `json:"items"`
	ExtraFields []ExtraField     `json:"extra_fields,omitempty"`
}

// Document is the common read surface the aggregation engine needs from
// either parsed shape.
type Document interface {
	File() string
	BuyerID() string
	IssueDate() string
	Total() decimal.Decimal
}

func (i *Invoice) File() string           { return i.FileName }
func (i *Invoice) BuyerID() string        { return i.Info.BuyerID }
func (i *Invoice) IssueDate() string      { return i.Info.IssueDate }
func (i *Invoice) Total() decimal.Decimal { return i.Info.Total }

// Number renders the human invoice number estab-ptoEmi-secuencial.
func (i *Invoice) Number() string {
	return i.Tributary.Establishment + "-" + i.Tributary.EmissionPoint + "-" + i.Tributary.Sequence
}

func (c *CreditNote) File() string      { return c.FileName }
func (c *CreditNote) BuyerID() string   { return c.Info.BuyerID }
func (c *CreditNote) IssueDate() string { return c.Info.IssueDate }

// Total of a credit note is the declared modification value.
func (c *CreditNote) Total() decimal.Decimal { return c.Info.ModificationValue }

func (c *CreditNote) Number() string {
	return c.Tributary.Establishment + "-" + c.Tributary.EmissionPoint + "-" + c.Tributary.Sequence
}
