package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hr-tools/punchbook/pkg/models/domain"
	"github.com/hr-tools/punchbook/pkg/services/attendance"
)

// ReportHandler renders a period report for the user.
type ReportHandler interface {
	Handle(report domain.PeriodReport) error
}

func NewReportCmd(reporter attendance.Reporter, handler ReportHandler) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the attendance ledger for a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := time.Now()
			if date != "" {
				parsed, err := time.ParseInLocation("2006-01-02", date, at.Location())
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				at = parsed
			}

			report, err := reporter.Report(cmd.Context(), at)
			if err != nil {
				return err
			}
			return handler.Handle(report)
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "any date inside the period (YYYY-MM-DD, default today)")

	return cmd
}
