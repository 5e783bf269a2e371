package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateDocument carries everything the certificate page prints
type CertificateDocument struct {
	Code             string
	InternFullName   string
	OrganizationName string
	PostingTitle     string
	StartDate        time.Time
	EndDate          time.Time
	DurationDays     int
	Score            float64
	Mention          string
	IssuedAt         time.Time
	VerificationURL  string
	QRCodePNG        []byte
}

// RenderCertificate lays out the certificate on a single landscape A4
// page and returns the PDF bytes.
func RenderCertificate(doc CertificateDocument) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Internship Certificate "+doc.Code, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Border
	pdf.SetLineWidth(0.8)
	pdf.SetDrawColor(30, 60, 120)
	pdf.Rect(8, 8, pageW-16, pageH-16, "D")
	pdf.SetLineWidth(0.2)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")

	pdf.SetY(28)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(30, 60, 120)
	pdf.CellFormat(0, 12, "CERTIFICATE OF INTERNSHIP", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, doc.OrganizationName+" certifies that", "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 11, doc.InternFullName, "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, "has completed an internship as", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 9, doc.PostingTitle, "", 1, "C", false, 0, "")

	period := fmt.Sprintf("from %s to %s (%d days)",
		doc.StartDate.Format("January 2, 2006"),
		doc.EndDate.Format("January 2, 2006"),
		doc.DurationDays,
	)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, period, "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 60, 120)
	pdf.CellFormat(0, 8, fmt.Sprintf("Final score: %.2f / 10  -  %s", doc.Score, doc.Mention), "", 1, "C", false, 0, "")

	// QR code bottom-left with verification caption
	if len(doc.QRCodePNG) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("verify-qr", opts, bytes.NewReader(doc.QRCodePNG))
		pdf.ImageOptions("verify-qr", 18, pageH-48, 30, 30, false, opts, 0, "")

		pdf.SetXY(18, pageH-17)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(60, 4, "Scan to verify authenticity", "", 0, "L", false, 0, "")
	}

	// Code and issue date bottom-right
	pdf.SetXY(pageW-98, pageH-30)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(80, 5, doc.Code, "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(80, 5, "Issued on "+doc.IssuedAt.Format("January 2, 2006"), "", 2, "R", false, 0, "")
	if doc.VerificationURL != "" {
		pdf.CellFormat(80, 5, doc.VerificationURL, "", 2, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
