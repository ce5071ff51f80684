package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/ativ97/battery-management/internal/config"
	"github.com/ativ97/battery-management/internal/metrics"
	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/timeutil"
)

var ErrNoScrapSelected = errors.New("no scrap serials selected")

// DisposalService runs the scrap -> challan -> archive pipeline. Each hop is
// a delete+insert pair inside one transaction; a battery is identified by
// serial across all three stages.
type DisposalService struct {
	ScrapRepo repositories.ScrapStore
	Store     repositories.WarrantyStore
}

func NewDisposalService(scrapRepo repositories.ScrapStore, store repositories.WarrantyStore) *DisposalService {
	return &DisposalService{ScrapRepo: scrapRepo, Store: store}
}

// RegisterScrap books a faulty unit into the scrap pool and logs the intake
// on the audit trail. If the serial is a known battery its status moves to
// returned_faulty in the same transaction.
func (s *DisposalService) RegisterScrap(ctx context.Context, req *models.RegisterScrapRequest) error {
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		_, err := tx.GetBattery(ctx, req.SerialNo)
		if err == nil {
			if err := tx.SetBatteryStatus(ctx, req.SerialNo, models.StatusReturnedFaulty); err != nil {
				return err
			}
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		err = tx.CreateScrap(ctx, &models.ScrapBattery{
			SerialNo:      req.SerialNo,
			ModelType:     req.ModelType,
			ReceivedDate:  timeutil.Today(),
			CustomerPhone: req.CustomerPhone,
			TicketID:      req.TicketID,
			Notes:         req.Notes,
		})
		if err != nil {
			return err
		}

		return tx.AppendExchange(ctx, &models.Exchange{
			Date:             timeutil.Stamp(),
			OldBatterySerial: req.SerialNo,
			CustomerPhone:    req.CustomerPhone,
			ActionTaken:      models.ActionMarkedFaulty,
			Notes:            fmt.Sprintf("Ticket: %s. Booked for disposal. %s", req.TicketID, req.Notes),
		})
	})
	if err == nil {
		metrics.ExchangesRecorded.WithLabelValues(models.ActionMarkedFaulty).Inc()
	}
	return err
}

// MoveScrapToChallan stages the selected serials onto an open challan,
// stamped with today's date. The batch moves atomically.
func (s *DisposalService) MoveScrapToChallan(ctx context.Context, serials []string) (int, error) {
	if len(serials) == 0 {
		return 0, ErrNoScrapSelected
	}
	return s.ScrapRepo.MoveScrapToChallan(ctx, serials, timeutil.Today())
}

// ClearChallanToArchive closes the open challan: every row moves into the
// audit archive with today's date as the final archive date.
func (s *DisposalService) ClearChallanToArchive(ctx context.Context) (int, error) {
	return s.ScrapRepo.ClearChallanToArchive(ctx, timeutil.Today())
}

func (s *DisposalService) ListScrap(ctx context.Context) ([]*models.ScrapBattery, error) {
	return s.ScrapRepo.ListScrap(ctx)
}

func (s *DisposalService) ListChallan(ctx context.Context) ([]*models.ChallanBattery, error) {
	return s.ScrapRepo.ListChallan(ctx)
}

func (s *DisposalService) ListArchive(ctx context.Context) ([]*models.ArchivedScrapBattery, error) {
	return s.ScrapRepo.ListArchive(ctx)
}

// ChallanPDF renders the open challan as the printable document that travels
// with the scrap consignment to the factory.
func (s *DisposalService) ChallanPDF(ctx context.Context) ([]byte, error) {
	challans, err := s.ScrapRepo.ListChallan(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, config.ShopName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Scrap Dispatch Challan - %s", timeutil.Today()), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(12, 8, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 8, "Serial No", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 8, "Model", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Received", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Challan Date", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, c := range challans {
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 8, c.SerialNo, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, c.ModelType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, c.ReceivedDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, c.ChallanDate, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total units: %d", len(challans)), "", 1, "L", false, 0, "")
	pdf.Ln(12)
	pdf.CellFormat(90, 8, "Prepared by", "T", 0, "C", false, 0, "")
	pdf.CellFormat(10, 8, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(90, 8, "Received by", "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
