package services

import (
	"strings"
	"testing"
	"time"
)

func TestBuildInvoicePDF(t *testing.T) {
	data := invoiceDocData{
		InvoiceNumber: "INV-1735689600000",
		BillStatus:    "UNPAID",
		DueDate:       time.Now().Add(7 * 24 * time.Hour),
		CustomerName:  "Budi",
		CustomerPhone: "0811",
		CustomerKota:  "Bandung",
		PickupID:      1,
		ActualVolume:  150,
		PricePerLiter: 7000,
		Amount:        1050000,
	}

	pdf, filename, err := buildInvoicePDF(data)
	if err != nil {
		t.Fatalf("buildInvoicePDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("buildInvoicePDF returned empty data")
	}
	if !strings.HasSuffix(filename, ".pdf") || !strings.Contains(filename, "INV-") {
		t.Fatalf("unexpected filename: %s", filename)
	}
}
