package employee

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderSalaryReport(t *testing.T) {
	var buf bytes.Buffer
	rows := []DepartmentSalary{
		{Department: "Engineering", AvgSalary: 95000},
		{Department: "Sales", AvgSalary: 61250.5},
	}
	if err := RenderSalaryReport(&buf, rows, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}
