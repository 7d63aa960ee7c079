package adapters

import (
	"github.com/hr-tools/punchbook/pkg/models/api"
	"github.com/hr-tools/punchbook/pkg/models/domain"
)

const dateLayout = "2006-01-02"

func MapDomainReportToAPI(report domain.PeriodReport) api.PeriodReport {
	out := api.PeriodReport{
		Period: report.Period.Key,
		From:   report.Period.Start.Format(dateLayout),
		To:     report.Period.End.Format(dateLayout),
		Users:  make([]api.UserReport, 0, len(report.Users)),
	}
	for _, u := range report.Users {
		out.Users = append(out.Users, MapDomainUserReportToAPI(u))
	}
	return out
}

func MapDomainUserReportToAPI(user domain.UserReport) api.UserReport {
	out := api.UserReport{
		UserID: user.UserID,
		Totals: make([]api.BucketTotal, 0, len(user.Totals)),
	}
	for _, d := range user.Days {
		out.Days = append(out.Days, api.DayRecord{
			Date:     d.Slot.Date.Format(dateLayout),
			Label:    d.Slot.Label,
			CheckIn:  d.CheckIn,
			CheckOut: d.CheckOut,
			Duration: d.Duration,
		})
	}
	for _, t := range user.Totals {
		out.Totals = append(out.Totals, api.BucketTotal{Label: t.Label, Value: t.Value})
	}
	return out
}
