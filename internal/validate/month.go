// Package validate holds cross-field consistency rules applied after
// parsing.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Bernix01/restos/internal/model"
)

// InvoiceMonth cross-checks the invoice issuance month against the file
// naming convention "<MM>-...". The convention files documents under the
// month preceding their issuance month, so the rule is
// issuanceMonth == fileMonth + 1. That offset is part of the external naming
// scheme and is reproduced exactly, not corrected.
//
// Credit notes are not checked; see the batch orchestrator.
func InvoiceMonth(inv *model.Invoice) error {
	fileToken := fileMonthToken(inv.FileName)
	dateToken := issuanceMonthToken(inv.Info.IssueDate)

	fileMonth, errFile := strconv.Atoi(fileToken)
	issuanceMonth, errDate := strconv.Atoi(dateToken)
	if errFile != nil || errDate != nil {
		return model.NewParseError(model.KindMonthMismatch, inv.FileName,
			fmt.Sprintf("cannot read months: file declares %q, document issued in %q", fileToken, dateToken), nil)
	}

	if issuanceMonth != fileMonth+1 {
		return model.NewParseError(model.KindMonthMismatch, inv.FileName,
			fmt.Sprintf("file declares month %d but document is issued in month %d", fileMonth, issuanceMonth), nil)
	}
	return nil
}

// fileMonthToken returns the leading token before the first dash.
func fileMonthToken(fileName string) string {
	token, _, _ := strings.Cut(fileName, "-")
	return token
}

// issuanceMonthToken returns the MM component of a DD/MM/YYYY date.
func issuanceMonthToken(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return date
	}
	return parts[1]
}
