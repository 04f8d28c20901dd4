package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

// DocsService menghasilkan PDF invoice untuk tagihan pickup.
type DocsService struct {
	BillRepo   repositories.BillRepository
	PickupRepo repositories.PickupRepository
	UserRepo   repositories.UserRepository
	RequestID  string
}

type invoiceDocData struct {
	InvoiceNumber string
	BillStatus    string
	DueDate       time.Time
	CustomerName  string
	CustomerPhone string
	CustomerKota  string
	PickupID      int64
	ActualVolume  float64
	PricePerLiter int64
	Amount        int64
}

// GenerateInvoice renders the bill as a PDF. Customers only get their
// own bills; admin and warehouse can pull any.
func (s DocsService) GenerateInvoice(ctx context.Context, actor domain.RequestContext, billID int64) ([]byte, string, error) {
	b, err := s.BillRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, "", err
	}
	if actor.Role == domain.RoleCustomer && b.UserID != actor.UserID {
		return nil, "", domain.ForbiddenError{Msg: "tidak berhak mengunduh invoice ini"}
	}
	if actor.Role == domain.RoleCourier {
		return nil, "", domain.ForbiddenError{Msg: "tidak berhak mengunduh invoice ini"}
	}

	p, err := s.PickupRepo.GetByID(ctx, b.PickupID)
	if err != nil {
		return nil, "", err
	}
	customer, err := s.UserRepo.GetByID(ctx, b.UserID)
	if err != nil {
		return nil, "", err
	}

	data := invoiceDocData{
		InvoiceNumber: b.InvoiceNumber,
		BillStatus:    string(b.Status),
		DueDate:       b.DueDate,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		CustomerKota:  customer.Kota,
		PickupID:      p.ID,
		PricePerLiter: p.PricePerLiter,
		Amount:        b.Amount,
	}
	if p.ActualVolume != nil {
		data.ActualVolume = *p.ActualVolume
	}

	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("bill_id=%d invoice=%s", billID, b.InvoiceNumber))
	return buildInvoicePDF(data)
}

func buildInvoicePDF(d invoiceDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE JELANTAHGO")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice   : "+d.InvoiceNumber)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal      : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Jatuh Tempo  : "+d.DueDate.Format("2006-01-02"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status       : "+d.BillStatus)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Nama   : %s", docSafe(d.CustomerName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("No HP  : %s", docSafe(d.CustomerPhone, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Kota   : %s", docSafe(d.CustomerKota, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)

	desc := fmt.Sprintf("Penjemputan minyak jelantah #%d, %.1f liter x %s/liter",
		d.PickupID, d.ActualVolume, utils.FormatRupiah(d.PricePerLiter))
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupiah(d.Amount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Harap lakukan pembayaran sebelum tanggal jatuh tempo. Simpan invoice ini sebagai bukti transaksi.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s.pdf", docFilenamePart(d.InvoiceNumber))
	return buf.Bytes(), filename, nil
}

func docSafe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func docFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "INVOICE"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
