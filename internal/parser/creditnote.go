package parser

import (
	"encoding/xml"

	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/money"
)

type creditNoteXML struct {
	XMLName         xml.Name          `xml:"notaCredito"`
	InfoTributaria  tributaryInfoXML  `xml:"infoTributaria"`
	InfoNotaCredito creditNoteInfoXML `xml:"infoNotaCredito"`
	Detalles        struct {
		Detalle []creditDetailXML `xml:"detalle"`
	} `xml:"detalles"`
	InfoAdicional struct {
		CampoAdicional []campoAdicionalXML `xml:"campoAdicional"`
	} `xml:"infoAdicional"`
}

type creditNoteInfoXML struct {
	FechaEmision                string `xml:"fechaEmision"`
	DirEstablecimiento          string `xml:"dirEstablecimiento"`
	TipoIdentificacionComprador string `xml:"tipoIdentificacionComprador"`
	RazonSocialComprador        string `xml:"razonSocialComprador"`
	IdentificacionComprador     string `xml:"identificacionComprador"`
	ContribuyenteEspecial       string `xml:"contribuyenteEspecial"`
	ObligadoContabilidad        string `xml:"obligadoContabilidad"`
	CodDocModificado            string `xml:"codDocModificado"`
	NumDocModificado            string `xml:"numDocModificado"`
	FechaEmisionDocSustento     string `xml:"fechaEmisionDocSustento"`
	TotalSinImpuestos           string `xml:"totalSinImpuestos"`
	ValorModificacion           string `xml:"valorModificacion"`
	Moneda                      string `xml:"moneda"`
	TotalConImpuestos           struct {
		TotalImpuesto []taxTotalXML `xml:"totalImpuesto"`
	} `xml:"totalConImpuestos"`
	Motivo string `xml:"motivo"`
}

type creditDetailXML struct {
	CodigoInterno          string `xml:"codigoInterno"`
	CodigoAdicional        string `xml:"codigoAdicional"`
	Descripcion            string `xml:"descripcion"`
	Cantidad               string `xml:"cantidad"`
	PrecioUnitario         string `xml:"precioUnitario"`
	Descuento              string `xml:"descuento"`
	PrecioTotalSinImpuesto string `xml:"precioTotalSinImpuesto"`
	Impuestos              struct {
		Impuesto []taxEntryXML `xml:"impuesto"`
	} `xml:"impuestos"`
	DetallesAdicionales struct {
		DetAdicional []detAdicionalXML `xml:"detAdicional"`
	} `xml:"detallesAdicionales"`
}

func parseCreditNote(fileName string, inner []byte) (*model.CreditNote, error) {
	var doc creditNoteXML
	if err := xml.Unmarshal(inner, &doc); err != nil {
		return nil, model.NewParseError(model.KindInvalidMarkup, fileName, "failed to decode notaCredito", err)
	}

	cn := &model.CreditNote{
		FileName:  fileName,
		Tributary: convertTributaryInfo(doc.InfoTributaria),
		Info: model.CreditNoteInfo{
			IssueDate:            doc.InfoNotaCredito.FechaEmision,
			EstablishmentAddress: doc.InfoNotaCredito.DirEstablecimiento,
			SpecialTaxpayer:      doc.InfoNotaCredito.ContribuyenteEspecial,
			Bookkeeping:          doc.InfoNotaCredito.ObligadoContabilidad,
			BuyerIDType:          doc.InfoNotaCredito.TipoIdentificacionComprador,
			BuyerName:            doc.InfoNotaCredito.RazonSocialComprador,
			BuyerID:              doc.InfoNotaCredito.IdentificacionComprador,
			ModifiedDocCode:      doc.InfoNotaCredito.CodDocModificado,
			ModifiedDocNumber:    doc.InfoNotaCredito.NumDocModificado,
			SupportDocDate:       doc.InfoNotaCredito.FechaEmisionDocSustento,
			Subtotal:             money.Parse(doc.InfoNotaCredito.TotalSinImpuestos),
			ModificationValue:    money.Parse(doc.InfoNotaCredito.ValorModificacion),
			Currency:             doc.InfoNotaCredito.Moneda,
			TaxTotals:            convertTaxTotals(doc.InfoNotaCredito.TotalConImpuestos.TotalImpuesto),
			Reason:               doc.InfoNotaCredito.Motivo,
		},
		ExtraFields: convertExtraFields(doc.InfoAdicional.CampoAdicional),
	}

	cn.Items = make([]model.CreditLineItem, 0, len(doc.Detalles.Detalle))
	for _, d := range doc.Detalles.Detalle {
		// No impuesto children means the no-taxes variant; NewTaxSet tags
		// the shape so consumers discriminate once, not at every reduce.
		taxes := model.NewTaxSet(convertTaxEntries(d.Impuestos.Impuesto))
		cn.Items = append(cn.Items, model.CreditLineItem{
			InternalCode:   d.CodigoInterno,
			AdditionalCode: d.CodigoAdicional,
			Description:    d.Descripcion,
			Quantity:       money.Parse(d.Cantidad),
			UnitPrice:      money.Parse(d.PrecioUnitario),
			Discount:       money.Parse(d.Descuento),
			Subtotal:       money.Parse(d.PrecioTotalSinImpuesto),
			Taxes:          taxes,
			ExtraDetails:   convertExtraDetails(d.DetallesAdicionales.DetAdicional),
		})
	}

	return cn, nil
}
