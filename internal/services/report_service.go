package services

import (
	"context"
	"errors"

	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/timeutil"
)

const recentExchangesLimit = 5

// ReportService is the read side. Every method is a projection of current
// store state; nothing here mutates. Empty results come back as empty
// slices, not errors.
type ReportService struct {
	CustomerRepo *repositories.CustomerRepository
	BatteryRepo  *repositories.BatteryRepository
	ExchangeRepo *repositories.ExchangeRepository
}

func NewReportService(
	customerRepo *repositories.CustomerRepository,
	batteryRepo *repositories.BatteryRepository,
	exchangeRepo *repositories.ExchangeRepository,
) *ReportService {
	return &ReportService{
		CustomerRepo: customerRepo,
		BatteryRepo:  batteryRepo,
		ExchangeRepo: exchangeRepo,
	}
}

func (s *ReportService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	customers, err := s.CustomerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	replaced, err := s.BatteryRepo.CountByStatus(ctx, models.StatusReplaced)
	if err != nil {
		return nil, err
	}
	exchanges, err := s.ExchangeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DashboardStats{
		TotalCustomers:    customers,
		BatteriesReplaced: replaced,
		ExchangesDone:     exchanges,
	}, nil
}

// BatteriesInService lists every unit currently on the shop floor.
func (s *ReportService) BatteriesInService(ctx context.Context) ([]*models.Battery, error) {
	return s.BatteryRepo.ListByStatuses(ctx, []string{models.StatusPending, models.StatusReadyForPickup})
}

// ReadyForPickup lists the units a customer can collect right now.
func (s *ReportService) ReadyForPickup(ctx context.Context, phone string) ([]*models.Battery, error) {
	return s.BatteryRepo.ListByOwnerAndStatuses(ctx, phone,
		[]string{models.StatusReadyForPickup, models.StatusPending})
}

func (s *ReportService) PendingFactoryStock(ctx context.Context) ([]*models.Battery, error) {
	return s.BatteryRepo.ListByStatuses(ctx, []string{models.StatusFactoryPending})
}

func (s *ReportService) RecentExchanges(ctx context.Context) ([]*models.Exchange, error) {
	return s.ExchangeRepo.ListRecent(ctx, recentExchangesLimit)
}

func (s *ReportService) StockReceiptHistory(ctx context.Context) ([]*models.Exchange, error) {
	return s.ExchangeRepo.ListByAction(ctx, models.ActionStockReceived)
}

func (s *ReportService) BatteryBySerial(ctx context.Context, serial string) (*models.Battery, error) {
	return s.BatteryRepo.GetBySerial(ctx, serial)
}

func (s *ReportService) BatteryHistory(ctx context.Context, serial string) ([]*models.Exchange, error) {
	return s.ExchangeRepo.ListBySerial(ctx, serial)
}

func (s *ReportService) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return s.CustomerRepo.GetByPhone(ctx, phone)
}

func (s *ReportService) CustomerBatteries(ctx context.Context, phone string) ([]*models.Battery, error) {
	return s.BatteryRepo.ListByOwner(ctx, phone)
}

func (s *ReportService) CustomerHistory(ctx context.Context, phone string) ([]*models.Exchange, error) {
	return s.ExchangeRepo.ListByPhone(ctx, phone)
}

// ReceiptData assembles the projection the counter prints after issuing a
// replacement. The battery's purchase age rides along for display.
func (s *ReportService) ReceiptData(ctx context.Context, serial string) (*models.ExchangeSummary, error) {
	battery, err := s.BatteryRepo.GetBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}

	summary := &models.ExchangeSummary{
		NewSerial:    battery.SerialNo,
		NewModel:     battery.ModelType,
		TicketID:     battery.TicketID,
		VehicleNo:    battery.VehicleNo,
		PurchaseDate: battery.DateOfPurchase,
		GeneratedAt:  timeutil.Stamp(),
	}

	if battery.CurrentOwnerPhone != nil {
		customer, err := s.CustomerRepo.GetByPhone(ctx, *battery.CurrentOwnerPhone)
		if err == nil {
			summary.CustomerName = customer.Name
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	history, err := s.ExchangeRepo.ListBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].ActionTaken == models.ActionNewReplacementIssued {
			summary.OldSerial = history[i].OldBatterySerial
			summary.Notes = history[i].Notes
			break
		}
	}

	return summary, nil
}
