package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a portrait PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderWeekly creates a landscape grid PDF: one row per day, one column per
// slot. Cells with several entries separate them with a blank line.
func (e *PDFExporter) RenderWeekly(days []string, slots []string, cells map[string]map[string][]string, title string) ([]byte, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("pdf requires at least one slot column")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	dayWidth := 28.0
	colWidth := (277.0 - dayWidth) / float64(len(slots))

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(dayWidth, 8, "Day", "1", 0, "C", false, 0, "")
	for _, slot := range slots {
		pdf.CellFormat(colWidth, 8, slot, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	rowHeight := 26.0
	lineHeight := 4.0
	for _, day := range days {
		x, y := pdf.GetXY()
		pdf.CellFormat(dayWidth, rowHeight, day, "1", 0, "C", false, 0, "")
		for i, slot := range slots {
			cellX := x + dayWidth + float64(i)*colWidth
			pdf.Rect(cellX, y, colWidth, rowHeight, "D")
			lines := cells[day][slot]
			textY := y + 2
			for _, line := range lines {
				if textY+lineHeight > y+rowHeight {
					break
				}
				pdf.SetXY(cellX+1, textY)
				pdf.CellFormat(colWidth-2, lineHeight, line, "", 0, "L", false, 0, "")
				textY += lineHeight
			}
		}
		pdf.SetXY(x, y+rowHeight)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render weekly pdf: %w", err)
	}
	return buf.Bytes(), nil
}
