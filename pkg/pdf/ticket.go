// Package pdf renders booking tickets for download. Layout is deliberately
// minimal: one page, booking details, and a QR code of the booking reference
// for the counter to scan.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

type Ticket struct {
	Reference     string
	HolderName    string
	MovieTitle    string
	ShowDate      string
	ShowTime      string
	SeatLabels    []string
	ExtraGuests   int
	PaymentStatus string
}

// RenderTicket produces the PDF bytes for one ticket.
func RenderTicket(t Ticket) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A5", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 12, "Movie Ticket")
	doc.Ln(16)

	doc.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Booking ref", t.Reference},
		{"Name", t.HolderName},
		{"Movie", t.MovieTitle},
		{"Date", t.ShowDate},
		{"Time", t.ShowTime},
		{"Seats", strings.Join(t.SeatLabels, ", ")},
		{"Extra guests", fmt.Sprintf("%d", t.ExtraGuests)},
		{"Payment", t.PaymentStatus},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(35, 8, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	png, err := qrcode.Encode(t.Reference, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode ticket QR: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
	doc.ImageOptions("ticket-qr", 100, 20, 35, 35, false, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket PDF: %w", err)
	}
	return buf.Bytes(), nil
}
