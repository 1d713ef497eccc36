package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Bernix01/restos/internal/aggregate"
	"github.com/Bernix01/restos/internal/batch"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [files...]",
	Short: "Compute dashboard aggregates for a batch of files",
	Long: `Parse the given authorization files and print the expense
aggregates the dashboard renders: totals and averages, business/personal
splits, per-rate tax breakdowns and semester subtotals.

Examples:
  restos summary invoices/
  restos summary invoices/*.xml -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML files found to process")
	}

	raw, err := readFiles(files)
	if err != nil {
		return err
	}

	processor := batch.New(logger)
	result := processor.Process(context.Background(), raw)
	for _, pe := range result.Errors {
		logger.Warn("file rejected", "file", pe.FileName, "error", pe.Message)
	}

	summary := aggregate.Build(logger, result.Invoices, result.CreditNotes)

	w, closeFn, err := openOutput()
	if err != nil {
		return err
	}
	defer closeFn()

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	case "table":
		return summaryTable(w, summary)
	default:
		return fmt.Errorf("unsupported output format for summary: %s", outputFormat)
	}
}

func summaryTable(w *os.File, s *aggregate.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Files imported\t%d\n", s.FilesImported)
	fmt.Fprintf(tw, "Invoices\t%d\n", s.InvoiceCount)
	fmt.Fprintf(tw, "Credit notes\t%d\n", s.CreditNoteCount)
	fmt.Fprintf(tw, "Total\t%s\n", s.Total.StringFixed(2))
	fmt.Fprintf(tw, "Business expenses\t%s\n", s.BusinessTotal.StringFixed(2))
	fmt.Fprintf(tw, "Personal expenses\t%s\n", s.PersonalTotal.StringFixed(2))
	if s.Average != nil {
		fmt.Fprintf(tw, "Average expense\t%s\n", s.Average.StringFixed(2))
	} else {
		fmt.Fprintf(tw, "Average expense\tno data\n")
	}
	fmt.Fprintf(tw, "Total taxes\t%s\n", s.TaxPaid.StringFixed(2))

	for _, rb := range s.RateBreakdowns {
		fmt.Fprintf(tw, "Rate %s%%\tbusiness %s / personal %s\n",
			rb.Rate.String(), rb.BusinessBase.StringFixed(2), rb.PersonalBase.StringFixed(2))
	}

	fmt.Fprintf(tw, "Invoice semesters\t1st %s (%d) / 2nd %s (%d)\n",
		s.InvoiceSemesters.FirstBase.StringFixed(2), s.InvoiceSemesters.FirstCount,
		s.InvoiceSemesters.SecondBase.StringFixed(2), s.InvoiceSemesters.SecondCount)
	fmt.Fprintf(tw, "Credit note semesters\t1st %s (%d) / 2nd %s (%d)\n",
		s.CreditNoteSemesters.FirstBase.StringFixed(2), s.CreditNoteSemesters.FirstCount,
		s.CreditNoteSemesters.SecondBase.StringFixed(2), s.CreditNoteSemesters.SecondCount)

	return tw.Flush()
}
