package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

// ReportService exports the pickup recap as an Excel workbook for the
// admin back office.
type ReportService struct {
	StatsRepo repositories.StatsRepository
	RequestID string
}

func (s ReportService) PickupRecapXLSX(ctx context.Context, from, to string) ([]byte, string, error) {
	rows, err := s.StatsRepo.PickupReport(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Rekap Pickup"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"ID", "Customer", "Kurir", "Status", "Tanggal",
		"Volume (L)", "Volume Aktual (L)", "Harga/Liter", "Total", "Fee Kurir", "Fee Affiliate",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		rowNum := i + 2
		set := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			f.SetCellValue(sheet, cell, v)
		}
		set(1, r.PickupID)
		set(2, r.CustomerName)
		set(3, r.CourierName)
		set(4, r.Status)
		set(5, r.ScheduledDate)
		set(6, r.Volume)
		if r.ActualVolume.Valid {
			set(7, r.ActualVolume.Float64)
		}
		set(8, r.PricePerLiter)
		set(9, r.TotalPrice)
		set(10, r.CourierFee)
		set(11, r.AffiliateFee)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "report", "pickup_recap", fmt.Sprintf("rows=%d from=%s to=%s", len(rows), from, to))
	filename := fmt.Sprintf("rekap_pickup_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
