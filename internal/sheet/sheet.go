// Package sheet renders a printable proofreading sheet for a batch of questions.
package sheet

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"bijbelquiz.app/backend/internal/questionbank"
	"bijbelquiz.app/backend/internal/quiz"
)

type Data struct {
	Title     string
	Date      time.Time
	Questions []quiz.Question
}

func GeneratePDF(data Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Pagina %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	title := data.Title
	if title == "" {
		title = "BijbelQuiz vragen"
	}
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7,
		fmt.Sprintf("%d vragen | %s", len(data.Questions), data.Date.Format("2006-01-02")),
		"", 1, "C", false, 0, "")

	// Summary table
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 7, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Aantal", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range questionbank.Stats(data.Questions) {
		pdf.CellFormat(80, 7, tr(row.Type.Label()), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Count), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	for i, q := range data.Questions {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, q.Prompt)), "", "L", false)

		pdf.SetFont("Helvetica", "", 9)
		meta := fmt.Sprintf("%s | moeilijkheid %d", q.Type.Label(), q.Difficulty)
		if q.BiblicalReference != "" {
			meta += " | " + q.BiblicalReference
		}
		pdf.CellFormat(0, 5, tr(meta), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr("Juist: "+q.CorrectAnswer), "", "L", false)
		pdf.MultiCell(0, 5, tr("Fout: "+joinOrDash(q.Distractors, ", ")), "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func joinOrDash(ss []string, sep string) string {
	if len(ss) == 0 {
		return "-"
	}
	return strings.Join(ss, sep)
}
