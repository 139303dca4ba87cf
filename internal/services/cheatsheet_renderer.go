package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

const cheatsheetTitle = "Interview Cheatsheet"

// CheatsheetRenderer lays out generated cheatsheet text as a PDF.
type CheatsheetRenderer interface {
	// Render writes the PDF to <generated>/<ownerID>/<filename> and returns
	// that path.
	Render(ownerID uuid.UUID, filename, text string) (string, error)
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineParagraph
	lineHeading
	lineSubheading
	lineBullet
)

type pdfCheatsheetRenderer struct {
	generatedPath string
}

func NewCheatsheetRenderer(generatedPath string) CheatsheetRenderer {
	return &pdfCheatsheetRenderer{generatedPath: generatedPath}
}

// Render implements CheatsheetRenderer.
func (r *pdfCheatsheetRenderer) Render(ownerID uuid.UUID, filename, text string) (string, error) {
	dir := filepath.Join(r.generatedPath, ownerID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cheatsheet directory: %w", err)
	}
	path := filepath.Join(dir, filename)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(cheatsheetTitle, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 12, cheatsheetTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	left, _, _, _ := pdf.GetMargins()
	for _, raw := range strings.Split(text, "\n") {
		kind, line := classifyLine(raw)
		switch kind {
		case lineBlank:
			pdf.Ln(3)
		case lineHeading:
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetTextColor(0, 51, 102)
			pdf.MultiCell(0, 8, tr(line), "", "L", false)
		case lineSubheading:
			pdf.Ln(1)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(0, 51, 102)
			pdf.MultiCell(0, 7, tr(line), "", "L", false)
		case lineBullet:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetX(left + 4)
			pdf.CellFormat(5, 6, tr("•"), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write cheatsheet PDF: %w", err)
	}

	return path, nil
}

// classifyLine maps one line of markdown-ish model output to its layout and
// the text to print, with bold markers removed.
func classifyLine(raw string) (lineKind, string) {
	line := strings.TrimSpace(strings.ReplaceAll(raw, "**", ""))

	switch {
	case line == "":
		return lineBlank, ""
	case strings.HasPrefix(line, "## "):
		return lineSubheading, strings.TrimSpace(line[3:])
	case strings.HasPrefix(line, "# "):
		return lineHeading, strings.TrimSpace(line[2:])
	case strings.HasPrefix(line, "* "), strings.HasPrefix(line, "- "):
		return lineBullet, strings.TrimSpace(line[2:])
	default:
		return lineParagraph, line
	}
}
