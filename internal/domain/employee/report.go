package employee

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderSalaryReport writes the department averages as a one-page PDF table.
func RenderSalaryReport(w io.Writer, rows []DepartmentSalary, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Average salary by department", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Average salary by department")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+generatedAt.UTC().Format(time.RFC3339))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(110, 8, "Department", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Average salary", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, row := range rows {
		pdf.CellFormat(110, 8, tr(row.Department), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", row.AvgSalary), "1", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
