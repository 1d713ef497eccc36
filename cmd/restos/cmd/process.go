package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Bernix01/restos/internal/batch"
	"github.com/Bernix01/restos/internal/export"
	"github.com/Bernix01/restos/internal/model"
)

var (
	outputFile string
	workers    int
	createdBy  string
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Parse authorization files into invoices and credit notes",
	Long: `Parse one or more SRI authorization XML files and partition them
into invoices, credit notes and parse errors.

File names must follow the "<MM>-*.xml" convention: the leading token names
the month the document is filed under (the month before its issuance month),
and invoices failing that check are rejected.

Examples:
  restos process 03-invoice.xml
  restos process invoices/ -f table
  restos process invoices/*.xml -f csv -o invoices.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	processCmd.Flags().IntVar(&workers, "workers", 4, "Number of files parsed concurrently")
	processCmd.Flags().StringVar(&createdBy, "created-by", "", "Creator tag stamped on CSV export rows")
}

func runProcess(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML files found to process")
	}
	logger.Debug("collected input files", "count", len(files))

	raw, err := readFiles(files)
	if err != nil {
		return err
	}

	processor := batch.New(logger, batch.WithWorkers(workers))
	result := processor.Process(context.Background(), raw)

	logger.Info("batch processed",
		"invoices", len(result.Invoices),
		"credit_notes", len(result.CreditNotes),
		"errors", len(result.Errors))

	return outputResult(logger, result)
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}
			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isXMLFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if !info.IsDir() && isXMLFile(match) {
				files = append(files, match)
			}
		}
	}

	return files, nil
}

func isXMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

func readFiles(paths []string) ([]model.RawDocument, error) {
	raw := make([]model.RawDocument, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		raw = append(raw, model.RawDocument{FileName: filepath.Base(path), Bytes: data})
	}
	return raw, nil
}

func openOutput() (*os.File, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func outputResult(logger *log.Logger, result *batch.Result) error {
	w, closeFn, err := openOutput()
	if err != nil {
		return err
	}
	defer closeFn()

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "table":
		return outputTable(w, result)
	case "csv":
		if len(result.Errors) > 0 {
			logger.Warn("CSV export covers invoices only; parse errors omitted", "errors", len(result.Errors))
		}
		records := make([]export.InvoiceRecord, 0, len(result.Invoices))
		for _, inv := range result.Invoices {
			records = append(records, export.FromInvoice(inv, createdBy))
		}
		return export.WriteCSV(w, records)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputTable(w *os.File, result *batch.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tTYPE\tNUMBER\tDATE\tBUYER\tTOTAL")
	fmt.Fprintln(tw, "----\t----\t------\t----\t-----\t-----")

	for _, inv := range result.Invoices {
		fmt.Fprintf(tw, "%s\tfactura\t%s\t%s\t%s\t%s\n",
			inv.FileName, inv.Number(), inv.Info.IssueDate, inv.Info.BuyerID, inv.Info.Total.StringFixed(2))
	}
	for _, cn := range result.CreditNotes {
		fmt.Fprintf(tw, "%s\tnotaCredito\t%s\t%s\t%s\t%s\n",
			cn.FileName, cn.Number(), cn.Info.IssueDate, cn.Info.BuyerID, cn.Info.ModificationValue.StringFixed(2))
	}
	for _, pe := range result.Errors {
		fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\n", pe.FileName, pe.Message)
	}

	return tw.Flush()
}
