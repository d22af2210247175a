package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kimaijira/config"
	"kimaijira/importer"
	"kimaijira/output"
)

var (
	extractInputs []string
	extractFormat string
	extractMapper string
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract worklog records from source files without submitting",
	Long: `Run the extraction stage only: parse source files, apply the task pattern to
each row, and report how many rows matched or were skipped.

Jira credentials are not required. With --output, the extracted records are
written to CSV or Excel for inspection before a real upload.`,
	Example: `
  # Check how many rows a Kimai export would produce
  kimaijira extract -i timesheet.csv

  # Extract several files and export the records for review
  kimaijira extract -i january.csv -i february.csv --output records.csv

  # Export to Excel
  kimaijira extract -i timesheet.csv --output records.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadExtraction()
		if err != nil {
			return err
		}

		result, err := importer.Run(extractInputs, extractFormat, extractMapper, *cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Extraction completed. Files: %d, Rows read: %d, Matched: %d, Skipped: %d\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RowsMatched,
			result.RowsSkipped,
		)

		if strings.TrimSpace(extractOutput) == "" {
			return nil
		}

		writer, err := output.WriterForFormat(detectOutputFormat(extractOutput))
		if err != nil {
			return err
		}
		if err := writer.Write(extractOutput, result.Records); err != nil {
			return err
		}
		fmt.Printf("Records written. Count: %d, File: %s\n", len(result.Records), extractOutput)
		return nil
	},
}

func detectOutputFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringArrayVarP(&extractInputs, "input", "i", nil, "Input file path (repeatable)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	extractCmd.Flags().StringVarP(&extractMapper, "mapper", "m", "kimai", "Row mapper: "+strings.Join(importer.SupportedMapperNames(), "|"))
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Write extracted records to this CSV/Excel file")

	_ = extractCmd.MarkFlagRequired("input")
}
