package parser

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/Bernix01/restos/internal/model"
)

// ExtractComprobante unwraps an SRI authorization envelope and returns the
// embedded comprobante markup. The comprobante element carries the inner
// document as CDATA (or escaped markup); etree hands back the raw text, the
// second parse stage is the caller's job.
func ExtractComprobante(fileName string, data []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", model.NewParseError(model.KindInvalidEnvelope, fileName, "authorization envelope is not well-formed XML", err)
	}

	root := doc.Root()
	if root == nil {
		return "", model.NewParseError(model.KindInvalidEnvelope, fileName, "empty authorization envelope", nil)
	}

	var comp *etree.Element
	if root.Tag == "autorizacion" {
		comp = root.SelectElement("comprobante")
	} else {
		// Some authority responses wrap the autorizacion one level deeper.
		comp = doc.FindElement("//autorizacion/comprobante")
	}
	if comp == nil {
		return "", model.NewParseError(model.KindInvalidEnvelope, fileName, "autorizacion/comprobante not found in envelope", nil)
	}

	inner := strings.TrimSpace(comp.Text())
	if inner == "" {
		return "", model.NewParseError(model.KindInvalidEnvelope, fileName, "comprobante payload is empty", nil)
	}
	return inner, nil
}
