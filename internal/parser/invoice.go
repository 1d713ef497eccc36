package parser

import (
	"encoding/xml"

	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/money"
)

type invoiceXML struct {
	XMLName        xml.Name         `xml:"factura"`
	InfoTributaria tributaryInfoXML `xml:"infoTributaria"`
	InfoFactura    invoiceInfoXML   `xml:"infoFactura"`
	Detalles       struct {
		Detalle []invoiceDetailXML `xml:"detalle"`
	} `xml:"detalles"`
	InfoAdicional struct {
		CampoAdicional []campoAdicionalXML `xml:"campoAdicional"`
	} `xml:"infoAdicional"`
	OtrosRubrosTerceros struct {
		Rubro []rubroXML `xml:"rubro"`
	} `xml:"otrosRubrosTerceros"`
}

type invoiceInfoXML struct {
	FechaEmision                string `xml:"fechaEmision"`
	DirEstablecimiento          string `xml:"dirEstablecimiento"`
	ContribuyenteEspecial       string `xml:"contribuyenteEspecial"`
	ObligadoContabilidad        string `xml:"obligadoContabilidad"`
	TipoIdentificacionComprador string `xml:"tipoIdentificacionComprador"`
	RazonSocialComprador        string `xml:"razonSocialComprador"`
	IdentificacionComprador     string `xml:"identificacionComprador"`
	DireccionComprador          string `xml:"direccionComprador"`
	TotalSinImpuestos           string `xml:"totalSinImpuestos"`
	TotalDescuento              string `xml:"totalDescuento"`
	TotalConImpuestos           struct {
		TotalImpuesto []taxTotalXML `xml:"totalImpuesto"`
	} `xml:"totalConImpuestos"`
	Propina      string `xml:"propina"`
	ImporteTotal string `xml:"importeTotal"`
	Moneda       string `xml:"moneda"`
	Pagos        struct {
		Pago []pagoXML `xml:"pago"`
	} `xml:"pagos"`
	GuiaRemision string `xml:"guiaRemision"`
}

type invoiceDetailXML struct {
	CodigoPrincipal        string `xml:"codigoPrincipal"`
	CodigoAuxiliar         string `xml:"codigoAuxiliar"`
	Descripcion            string `xml:"descripcion"`
	UnidadMedida           string `xml:"unidadMedida"`
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

func parseInvoice(fileName string, inner []byte) (*model.Invoice, error) {
	var doc invoiceXML
	if err := xml.Unmarshal(inner, &doc); err != nil {
		return nil, model.NewParseError(model.KindInvalidMarkup, fileName, "failed to decode factura", err)
	}

	inv := &model.Invoice{
		FileName:  fileName,
		Tributary: convertTributaryInfo(doc.InfoTributaria),
		Info: model.InvoiceInfo{
			IssueDate:            doc.InfoFactura.FechaEmision,
			EstablishmentAddress: doc.InfoFactura.DirEstablecimiento,
			SpecialTaxpayer:      doc.InfoFactura.ContribuyenteEspecial,
			Bookkeeping:          doc.InfoFactura.ObligadoContabilidad,
			BuyerIDType:          doc.InfoFactura.TipoIdentificacionComprador,
			BuyerName:            doc.InfoFactura.RazonSocialComprador,
			BuyerID:              doc.InfoFactura.IdentificacionComprador,
			BuyerAddress:         doc.InfoFactura.DireccionComprador,
			Subtotal:             money.Parse(doc.InfoFactura.TotalSinImpuestos),
			TotalDiscount:        money.Parse(doc.InfoFactura.TotalDescuento),
			TaxTotals:            convertTaxTotals(doc.InfoFactura.TotalConImpuestos.TotalImpuesto),
			Tip:                  doc.InfoFactura.Propina,
			Total:                money.Parse(doc.InfoFactura.ImporteTotal),
			Currency:             doc.InfoFactura.Moneda,
			Payments:             convertPayments(doc.InfoFactura.Pagos.Pago),
			RemissionGuide:       doc.InfoFactura.GuiaRemision,
		},
		ExtraFields:  convertExtraFields(doc.InfoAdicional.CampoAdicional),
		OtherCharges: convertOtherCharges(doc.OtrosRubrosTerceros.Rubro),
	}

	inv.Items = make([]model.LineItem, 0, len(doc.Detalles.Detalle))
	for _, d := range doc.Detalles.Detalle {
		inv.Items = append(inv.Items, model.LineItem{
			MainCode:     d.CodigoPrincipal,
			AuxCode:      d.CodigoAuxiliar,
			Description:  d.Descripcion,
			Unit:         d.UnidadMedida,
			Quantity:     money.Parse(d.Cantidad),
			UnitPrice:    money.Parse(d.PrecioUnitario),
			Discount:     money.Parse(d.Descuento),
			Subtotal:     money.Parse(d.PrecioTotalSinImpuesto),
			Taxes:        convertTaxEntries(d.Impuestos.Impuesto),
			ExtraDetails: convertExtraDetails(d.DetallesAdicionales.DetAdicional),
		})
	}

	return inv, nil
}
