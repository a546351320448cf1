// Package export implements the export command: the PDF report.
package export

import (
	"fmt"
	"os"
	"time"

	"expense-view/cmd/root"
	"expense-view/internal/apierror"
	"expense-view/internal/dateutils"
	"expense-view/internal/logging"
	"expense-view/internal/models"
	"expense-view/internal/validation"

	"github.com/spf13/cobra"
)

var (
	period   string
	title    string
	output   string
	sections []string
	from, to string
)

var sectionNames = []string{"summary", "essential", "categories", "trend"}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a PDF report",
	Long: `Ask the backend to render a PDF report for a period and save it.

Sections: summary, essential (essential vs optional), categories (category
breakdown) and trend (monthly trend). The default is the first three.`,
	Example: `  expense-view export --period last3months -o q1.pdf
  expense-view export --from 2025-01-01 --to 2025-03-31 --sections summary,trend -o report.pdf`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}

		req, err := buildRequest(cmd)
		if err != nil {
			return err
		}
		if err := validation.IsValidOutputDir(output); err != nil {
			return err
		}

		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		n, err := c.GetClient().ExportPDF(cmd.Context(), req, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(output)
			return fmt.Errorf("%s", apierror.UserMessage(err))
		}

		c.GetLogger().Info("Report exported",
			logging.F(logging.FieldFile, output),
			logging.F("bytes", n))
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s report to %s\n", dateutils.PeriodLabel(req.Period, time.Now()), output)
		return nil
	},
}

// buildRequest turns the flags into an export request.
func buildRequest(cmd *cobra.Command) (models.PDFExportRequest, error) {
	req := models.PDFExportRequest{Period: period, Title: title}

	if from != "" || to != "" {
		if cmd.Flags().Changed("period") {
			return req, fmt.Errorf("--period cannot be combined with --from/--to")
		}
		start, err := time.Parse(dateutils.DateLayoutISO, from)
		if err != nil {
			return req, fmt.Errorf("--from must be YYYY-MM-DD")
		}
		end, err := time.Parse(dateutils.DateLayoutISO, to)
		if err != nil {
			return req, fmt.Errorf("--to must be YYYY-MM-DD")
		}
		req.Period = dateutils.RangePeriod(start, end)
	}
	if err := dateutils.ValidatePeriod(req.Period); err != nil {
		return req, err
	}

	if !cmd.Flags().Changed("sections") {
		req.Sections = models.DefaultPDFSections()
		return req, nil
	}
	for _, s := range sections {
		switch s {
		case "summary":
			req.Sections.Summary = true
		case "essential":
			req.Sections.EssentialOptional = true
		case "categories":
			req.Sections.CategoryBreakdown = true
		case "trend":
			req.Sections.MonthlyTrend = true
		default:
			return req, fmt.Errorf("unknown section %q (choose from %v)", s, sectionNames)
		}
	}
	return req, nil
}

func init() {
	Cmd.Flags().StringVarP(&period, "period", "p", dateutils.PeriodMonth, "Report period")
	Cmd.Flags().StringVar(&from, "from", "", "Start of a custom range (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&to, "to", "", "End of a custom range (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&title, "title", "", "Report title")
	Cmd.Flags().StringSliceVar(&sections, "sections", nil, "Sections to include")
	Cmd.Flags().StringVarP(&output, "output", "o", "expense-report.pdf", "Output file")
}
