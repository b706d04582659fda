package services

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/oguzhanc/extpipe/internal/models"
	"github.com/oguzhanc/extpipe/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Build Report</title>
</head>
<body>
  <h1>Build Report</h1>
  <p>Generated at {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
  <p>{{.Passed}} / {{.Total}} units passing ({{printf "%.1f" .PassRate}}%)</p>
  <table border="1" cellspacing="0" cellpadding="4">
    <tr><th>Unit</th><th>Status</th><th>Message</th><th>Duration (ms)</th></tr>
    {{range .Rows}}
    <tr>
      <td>{{.UnitPath}}</td>
      <td>{{.Status}}</td>
      <td>{{.Message}}</td>
      <td>{{.DurationMS}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>
`

// ReportService aggregates recorded outcomes into the build report and
// renders it as an HTML page or a spreadsheet.
type ReportService struct {
	outcomeRepo *repositories.OutcomeRepository
}

// NewReportService creates a new report service
func NewReportService(outcomeRepo *repositories.OutcomeRepository) *ReportService {
	return &ReportService{outcomeRepo: outcomeRepo}
}

// BuildReport aggregates the latest outcome of every unit.
func (s *ReportService) BuildReport() (*models.Report, error) {
	outcomes, err := s.outcomeRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load outcomes: %w", err)
	}

	report := &models.Report{
		GeneratedAt: time.Now(),
		Rows:        make([]models.ReportRow, 0, len(outcomes)),
	}

	for _, outcome := range outcomes {
		report.Total++
		if outcome.Passed() {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Rows = append(report.Rows, models.ReportRow{
			UnitPath:   outcome.UnitPath,
			Status:     outcome.Status,
			Message:    outcome.Message,
			DurationMS: outcome.DurationMS,
		})
	}

	if report.Total > 0 {
		report.PassRate = float64(report.Passed) / float64(report.Total) * 100
	}

	return report, nil
}

// WriteHTML renders the report to a static HTML file.
func (s *ReportService) WriteHTML(report *models.Report, path string) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return nil
}

// ExportXLSX renders the report as a spreadsheet with a summary sheet
// and a per-unit sheet.
func (s *ReportService) ExportXLSX(report *models.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Generated at", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total units", report.Total},
		{"Passed", report.Passed},
		{"Failed", report.Failed},
		{"Pass rate (%)", report.PassRate},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, err
		}
	}

	units := "Units"
	if _, err := f.NewSheet(units); err != nil {
		return nil, err
	}

	header := []interface{}{"Unit", "Status", "Message", "Duration (ms)"}
	if err := f.SetSheetRow(units, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{row.UnitPath, string(row.Status), row.Message, row.DurationMS}
		if err := f.SetSheetRow(units, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
