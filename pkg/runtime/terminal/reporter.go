package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/hr-tools/punchbook/pkg/models/domain"
)

// Printer outputs period reports to the console in a formatted text form
type Printer struct {
	writer io.Writer
}

// NewPrinter creates a new console printer
func NewPrinter(writer io.Writer) *Printer {
	if writer == nil {
		writer = os.Stdout
	}
	return &Printer{writer: writer}
}

func (p *Printer) Handle(report domain.PeriodReport) error {
	tmpl := `
Attendance {{.Period.Key}} ({{len .Period.Slots}} days)
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
{{if not .Users}}
No attendance recorded yet.
{{end}}{{range .Users}}
=== {{.UserID}} ===
{{range .Days}}{{.Slot.Label}}: {{.CheckIn}}{{if .CheckOut}} to {{.CheckOut}}{{end}}{{if .Duration}} ({{.Duration}}){{end}}
{{end}}{{range .Totals}}{{.Label}}: {{.Value}}
{{end}}{{end}}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(p.writer, report)
}
