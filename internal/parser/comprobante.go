package parser

import (
	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/money"
)

// Wire structs shared by factura and notaCredito. Identifier-like fields
// (estab, ptoEmi, secuencial, ruc, catalog codes) decode as strings: they
// carry significant leading zeros and coercing them to numbers corrupts
// them.
type tributaryInfoXML struct {
	Ambiente        string `xml:"ambiente"`
	TipoEmision     string `xml:"tipoEmision"`
	RazonSocial     string `xml:"razonSocial"`
	NombreComercial string `xml:"nombreComercial"`
	RUC             string `xml:"ruc"`
	ClaveAcceso     string `xml:"claveAcceso"`
	CodDoc          string `xml:"codDoc"`
	Estab           string `xml:"estab"`
	PtoEmi          string `xml:"ptoEmi"`
	Secuencial      string `xml:"secuencial"`
	DirMatriz       string `xml:"dirMatriz"`
}

type taxEntryXML struct {
	Codigo           string `xml:"codigo"`
	CodigoPorcentaje string `xml:"codigoPorcentaje"`
	Tarifa           string `xml:"tarifa"`
	BaseImponible    string `xml:"baseImponible"`
	Valor            string `xml:"valor"`
}

type taxTotalXML struct {
	Codigo              string `xml:"codigo"`
	CodigoPorcentaje    string `xml:"codigoPorcentaje"`
	Tarifa              string `xml:"tarifa"`
	DescuentoAdicional  string `xml:"descuentoAdicional"`
	BaseImponible       string `xml:"baseImponible"`
	Valor               string `xml:"valor"`
}

type campoAdicionalXML struct {
	Nombre string `xml:"nombre,attr"`
	Valor  string `xml:",chardata"`
}

type detAdicionalXML struct {
	Nombre string `xml:"nombre,attr"`
	Valor  string `xml:"valor,attr"`
}

type pagoXML struct {
	FormaPago    string `xml:"formaPago"`
	Total        string `xml:"total"`
	Plazo        string `xml:"plazo"`
	UnidadTiempo string `xml:"unidadTiempo"`
}

type rubroXML struct {
	Concepto string `xml:"concepto"`
	Total    string `xml:"total"`
}

func convertTributaryInfo(t tributaryInfoXML) model.TributaryInfo {
	return model.TributaryInfo{
		Environment:       t.Ambiente,
		EmissionType:      t.TipoEmision,
		BusinessName:      t.RazonSocial,
		TradeName:         t.NombreComercial,
		RUC:               t.RUC,
		AccessKey:         t.ClaveAcceso,
		DocumentCode:      t.CodDoc,
		Establishment:     t.Estab,
		EmissionPoint:     t.PtoEmi,
		Sequence:          t.Secuencial,
		HeadOfficeAddress: t.DirMatriz,
	}
}

// convertTaxEntries always returns a non-nil slice: single-impuesto and
// multi-impuesto documents must come out shaped the same.
func convertTaxEntries(entries []taxEntryXML) []model.TaxEntry {
	out := make([]model.TaxEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.TaxEntry{
			Code:        e.Codigo,
			RateCode:    e.CodigoPorcentaje,
			Rate:        money.Parse(e.Tarifa),
			TaxableBase: money.Parse(e.BaseImponible),
			Value:       money.Parse(e.Valor),
		})
	}
	return out
}

func convertTaxTotals(totals []taxTotalXML) []model.TaxTotal {
	out := make([]model.TaxTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, model.TaxTotal{
			Code:               t.Codigo,
			RateCode:           t.CodigoPorcentaje,
			Rate:               money.Parse(t.Tarifa),
			AdditionalDiscount: money.Parse(t.DescuentoAdicional),
			TaxableBase:        money.Parse(t.BaseImponible),
			Value:              money.Parse(t.Valor),
		})
	}
	return out
}

func convertExtraFields(fields []campoAdicionalXML) []model.ExtraField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]model.ExtraField, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.ExtraField{Name: f.Nombre, Value: f.Valor})
	}
	return out
}

func convertExtraDetails(details []detAdicionalXML) []model.ExtraField {
	if len(details) == 0 {
		return nil
	}
	out := make([]model.ExtraField, 0, len(details))
	for _, d := range details {
		out = append(out, model.ExtraField{Name: d.Nombre, Value: d.Valor})
	}
	return out
}

func convertPayments(pagos []pagoXML) []model.Payment {
	if len(pagos) == 0 {
		return nil
	}
	out := make([]model.Payment, 0, len(pagos))
	for _, p := range pagos {
		out = append(out, model.Payment{
			Method:   p.FormaPago,
			Total:    money.Parse(p.Total),
			Term:     p.Plazo,
			TimeUnit: p.UnidadTiempo,
		})
	}
	return out
}

func convertOtherCharges(rubros []rubroXML) []model.OtherCharge {
	if len(rubros) == 0 {
		return nil
	}
	out := make([]model.OtherCharge, 0, len(rubros))
	for _, r := range rubros {
		out = append(out, model.OtherCharge{Concept: r.Concepto, Total: money.Parse(r.Total)})
	}
	return out
}
