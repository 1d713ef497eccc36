package batch_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernix01/restos/internal/batch"
	"github.com/Bernix01/restos/internal/model"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func envelope(inner string) []byte {
	return []byte(`<autorizacion><estado>AUTORIZADO</estado><comprobante><![CDATA[` + inner + `]]></comprobante></autorizacion>`)
}

func invoiceFile(name, issueDate, buyerID string) model.RawDocument {
	inner := fmt.Sprintf(`<factura>
  <infoTributaria><codDoc>01</codDoc><estab>001</estab><ptoEmi>001</ptoEmi><secuencial>000000001</secuencial></infoTributaria>
  <infoFactura>
    <fechaEmision>%s</fechaEmision>
    <identificacionComprador>%s</identificacionComprador>
    <totalSinImpuestos>100.00</totalSinImpuestos>
    <importeTotal>112.00</importeTotal>
  </infoFactura>
  <detalles><detalle><descripcion>X</descripcion><impuestos><impuesto><codigo>2</codigo><tarifa>12</tarifa><baseImponible>100.00</baseImponible><valor>12.00</valor></impuesto></impuestos></detalle></detalles>
</factura>`, issueDate, buyerID)
	return model.RawDocument{FileName: name, Bytes: envelope(inner)}
}

func creditNoteFile(name, issueDate string) model.RawDocument {
	inner := fmt.Sprintf(`<notaCredito>
  <infoTributaria><codDoc>04</codDoc><estab>001</estab><ptoEmi>001</ptoEmi><secuencial>000000002</secuencial></infoTributaria>
  <infoNotaCredito>
    <fechaEmision>%s</fechaEmision>
    <identificacionComprador>1712345678</identificacionComprador>
    <valorModificacion>56.00</valorModificacion>
  </infoNotaCredito>
  <detalles><detalle><descripcion>X</descripcion><impuestos></impuestos></detalle></detalles>
</notaCredito>`, issueDate)
	return model.RawDocument{FileName: name, Bytes: envelope(inner)}
}

func TestProcess_Partitions(t *testing.T) {
	files := []model.RawDocument{
		invoiceFile("03-a.xml", "01/04/2023", "1790016919001"),
		creditNoteFile("03-b.xml", "15/04/2023"),
		{FileName: "03-c.xml", Bytes: []byte("not xml")},
		invoiceFile("03-d.xml", "01/04/2023", "1712345678"),
	}

	p := batch.New(testLogger())
	result := p.Process(context.Background(), files)

	// Every input lands in exactly one partition.
	require.Len(t, result.Invoices, 2)
	require.Len(t, result.CreditNotes, 1)
	require.Len(t, result.Errors, 1)

	// Each partition keeps the input order.
	assert.Equal(t, "03-a.xml", result.Invoices[0].FileName)
	assert.Equal(t, "03-d.xml", result.Invoices[1].FileName)
	assert.Equal(t, "03-b.xml", result.CreditNotes[0].FileName)
	assert.Equal(t, "03-c.xml", result.Errors[0].FileName)
	assert.Equal(t, model.KindInvalidEnvelope, result.Errors[0].Kind)
}

func TestProcess_InvoiceMonthMismatchRejected(t *testing.T) {
	files := []model.RawDocument{
		invoiceFile("03-a.xml", "01/06/2023", "1712345678"),
	}

	result := batch.New(testLogger()).Process(context.Background(), files)

	assert.Empty(t, result.Invoices)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.KindMonthMismatch, result.Errors[0].Kind)
}

// Credit notes skip the month check entirely.
func TestProcess_CreditNoteBypassesMonthCheck(t *testing.T) {
	files := []model.RawDocument{
		creditNoteFile("03-late.xml", "01/12/2023"),
	}

	result := batch.New(testLogger()).Process(context.Background(), files)

	assert.Empty(t, result.Errors)
	require.Len(t, result.CreditNotes, 1)
}

func TestProcess_StableOrderUnderConcurrency(t *testing.T) {
	const n = 40
	files := make([]model.RawDocument, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, invoiceFile(fmt.Sprintf("03-%03d.xml", i), "01/04/2023", "1712345678"))
	}

	result := batch.New(testLogger(), batch.WithWorkers(8)).Process(context.Background(), files)

	require.Len(t, result.Invoices, n)
	for i, inv := range result.Invoices {
		assert.Equal(t, fmt.Sprintf("03-%03d.xml", i), inv.FileName)
	}
}

func TestProcess_Empty(t *testing.T) {
	result := batch.New(testLogger()).Process(context.Background(), nil)
	require.NotNil(t, result)
	assert.Empty(t, result.Invoices)
	assert.Empty(t, result.CreditNotes)
	assert.Empty(t, result.Errors)
}

func TestWithWorkers_IgnoresNonPositive(t *testing.T) {
	// A bogus worker count falls back to the default instead of deadlocking.
	p := batch.New(testLogger(), batch.WithWorkers(0))
	result := p.Process(context.Background(), []model.RawDocument{
		invoiceFile("03-a.xml", "01/04/2023", "1712345678"),
	})
	require.Len(t, result.Invoices, 1)
}
