package infra

// pdf.go — printable payroll report rendered with go-pdf/fpdf.
// One A4 page per employee: header with name/role/period, a day-by-day table
// (date, first entry, last exit, regular and overtime hours, pay) and the
// period totals in bold. Written to storagePath/nomina_{id}_{desde}_{hasta}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"

	"github.com/go-pdf/fpdf"
)

func fmtHoras(mins float64) string {
	h := int(mins) / 60
	m := int(mins) % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// GenerateNominaPDF renders the payroll breakdown of one employee.
// Returns the absolute path to the generated file.
func GenerateNominaPDF(n *dto.NominaEmpleado, desde, hasta, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("nomina_%s_%s_%s.pdf", n.IDEmpleado, desde, hasta)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "El Puestito — Reporte de Nómina", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, n.Nombre, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Rol: %s    ID: %s", n.Rol, n.IDEmpleado), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Período: %s a %s", desde, hasta), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Daily table ──────────────────────────────────────────────────────────
	cols := []float64{contentW * 0.18, contentW * 0.15, contentW * 0.15, contentW * 0.15, contentW * 0.15, contentW * 0.22}
	headers := []string{"Fecha", "Entrada", "Salida", "Hrs Reg", "Hrs Extra", "Pago"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(cols[i], 6, h, "B", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	fechas := make([]string, 0, len(n.Dias))
	for f := range n.Dias {
		fechas = append(fechas, f)
	}
	sort.Strings(fechas)

	pdf.SetFont("Helvetica", "", 9)
	for _, f := range fechas {
		d := n.Dias[f]
		entrada, salida := "—", "—"
		if d.PrimeraEntrada != nil {
			entrada = d.PrimeraEntrada.Format("15:04")
		}
		if d.UltimaSalida != nil {
			salida = d.UltimaSalida.Format("15:04")
		}
		pdf.CellFormat(cols[0], 6, f, "", 0, "C", false, 0, "")
		pdf.CellFormat(cols[1], 6, entrada, "", 0, "C", false, 0, "")
		pdf.CellFormat(cols[2], 6, salida, "", 0, "C", false, 0, "")
		pdf.CellFormat(cols[3], 6, fmtHoras(d.MinutosRegulares), "", 0, "C", false, 0, "")
		pdf.CellFormat(cols[4], 6, fmtHoras(d.MinutosExtra), "", 0, "C", false, 0, "")
		pdf.CellFormat(cols[5], 6, "C$ "+d.Pago.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.6, 6, fmt.Sprintf("Horas regulares: %s", fmtHoras(n.MinutosRegulares)), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, "Pago regular: C$ "+n.PagoRegular.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.6, 6, fmt.Sprintf("Horas extra (x2): %s", fmtHoras(n.MinutosExtra)), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, "Pago extra: C$ "+n.PagoExtra.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.6, 8, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 8, "C$ "+n.PagoTotal.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
