// Package parser turns raw SRI authorization files into typed documents.
//
// Parsing is two-stage: the outer envelope is unwrapped to recover the
// embedded comprobante markup, then the comprobante is classified by its
// root element (factura or notaCredito) and mapped into the matching shape.
// Every failure comes back as a *model.ParseError; nothing is thrown past
// this boundary.
package parser

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/Bernix01/restos/internal/model"
)

// Classify reports the comprobante kind from its root element without
// decoding the full document.
func Classify(inner []byte) (model.DocumentKind, error) {
	root, err := rootElement(inner)
	if err != nil {
		return model.KindUnknownDocument, err
	}
	switch root {
	case "factura":
		return model.KindInvoice, nil
	case "notaCredito":
		return model.KindCreditNote, nil
	default:
		return model.KindUnknownDocument, nil
	}
}

// Parse runs both stages over one authorization file. Exactly one of the
// returned invoice, credit note or error is non-nil.
func Parse(fileName string, data []byte) (*model.Invoice, *model.CreditNote, error) {
	inner, err := ExtractComprobante(fileName, data)
	if err != nil {
		return nil, nil, err
	}
	return ParseComprobante(fileName, []byte(inner))
}

// ParseComprobante classifies and maps an already-unwrapped comprobante.
func ParseComprobante(fileName string, inner []byte) (*model.Invoice, *model.CreditNote, error) {
	kind, err := Classify(inner)
	if err != nil {
		return nil, nil, model.NewParseError(model.KindInvalidMarkup, fileName, "comprobante is not well-formed XML", err)
	}

	switch kind {
	case model.KindInvoice:
		inv, err := parseInvoice(fileName, inner)
		if err != nil {
			return nil, nil, err
		}
		return inv, nil, nil
	case model.KindCreditNote:
		cn, err := parseCreditNote(fileName, inner)
		if err != nil {
			return nil, nil, err
		}
		return nil, cn, nil
	default:
		return nil, nil, model.NewParseError(model.KindUnknownDocumentType, fileName, "comprobante root is neither factura nor notaCredito", nil)
	}
}

// rootElement returns the local name of the first start element.
func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}
