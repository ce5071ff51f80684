package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ativ97/battery-management/internal/metrics"
	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/timeutil"
)

var ErrUnknownStatus = errors.New("unknown battery status")

// WarrantyService is the lifecycle engine. Every operation runs as a single
// transaction: customer upsert, battery mutation and the audit append either
// all commit or none do. The exchange log is append-only; nothing here ever
// updates or deletes an exchange row.
type WarrantyService struct {
	Store repositories.WarrantyStore
}

func NewWarrantyService(store repositories.WarrantyStore) *WarrantyService {
	return &WarrantyService{Store: store}
}

// upsertCustomer creates the customer on first contact or overwrites the
// name on later ones (last write wins).
func upsertCustomer(ctx context.Context, tx repositories.TxStore, phone, name string) error {
	_, err := tx.GetCustomer(ctx, phone)
	if errors.Is(err, repositories.ErrNotFound) {
		return tx.CreateCustomer(ctx, &models.Customer{
			Phone:     phone,
			Name:      name,
			CreatedAt: timeutil.Today(),
		})
	}
	if err != nil {
		return err
	}
	return tx.UpdateCustomerName(ctx, phone, name)
}

// UpdateBatteryStatus sets a battery to any known status. There is no
// transition table; the shop floor moves units in whatever order the day
// demands. Returns ErrNotFound when the serial does not exist.
func (s *WarrantyService) UpdateBatteryStatus(ctx context.Context, serial, status string) error {
	if !models.IsKnownStatus(status) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	return s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		if _, err := tx.GetBattery(ctx, serial); err != nil {
			return err
		}
		return tx.SetBatteryStatus(ctx, serial, status)
	})
}

// ProcessNewBatteryExchange issues a replacement unit under a warranty claim.
// The old unit, if known, is marked returned_faulty; the replacement is
// upserted as sold and attached to the customer; one audit row links the two.
func (s *WarrantyService) ProcessNewBatteryExchange(ctx context.Context, req *models.NewExchangeRequest) error {
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		if err := upsertCustomer(ctx, tx, req.CustomerPhone, req.CustomerName); err != nil {
			return err
		}

		// The old unit may be unknown to us (bought elsewhere); skip silently
		_, err := tx.GetBattery(ctx, req.OldSerial)
		if err == nil {
			if err := tx.SetBatteryStatus(ctx, req.OldSerial, models.StatusReturnedFaulty); err != nil {
				return err
			}
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		phone := req.CustomerPhone
		battery, err := tx.GetBattery(ctx, req.NewSerial)
		switch {
		case err == nil:
			battery.Status = models.StatusSold
			battery.TicketID = req.TicketID
			battery.CurrentOwnerPhone = &phone
			battery.VehicleNo = req.VehicleNo
			battery.DateOfPurchase = req.PurchaseDate
			if err := tx.UpdateBattery(ctx, battery); err != nil {
				return err
			}
		case errors.Is(err, repositories.ErrNotFound):
			err := tx.CreateBattery(ctx, &models.Battery{
				SerialNo:          req.NewSerial,
				ModelType:         req.NewModel,
				Status:            models.StatusSold,
				SoldDate:          timeutil.Today(),
				DateOfPurchase:    req.PurchaseDate,
				CurrentOwnerPhone: &phone,
				TicketID:          req.TicketID,
				VehicleNo:         req.VehicleNo,
			})
			if err != nil {
				return err
			}
		default:
			return err
		}

		newSerial := req.NewSerial
		return tx.AppendExchange(ctx, &models.Exchange{
			Date:             timeutil.Stamp(),
			OldBatterySerial: req.OldSerial,
			NewBatterySerial: &newSerial,
			CustomerPhone:    req.CustomerPhone,
			ActionTaken:      models.ActionNewReplacementIssued,
			Notes:            fmt.Sprintf("Ticket: %s. %s", req.TicketID, req.Notes),
		})
	})
	if err == nil {
		metrics.ExchangesRecorded.WithLabelValues(models.ActionNewReplacementIssued).Inc()
	}
	return err
}

// ProcessServiceEntry books a unit in for repair. The audit row references
// the same serial on both sides, meaning the customer keeps the same unit.
func (s *WarrantyService) ProcessServiceEntry(ctx context.Context, req *models.ServiceEntryRequest) error {
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		if err := upsertCustomer(ctx, tx, req.CustomerPhone, req.CustomerName); err != nil {
			return err
		}

		phone := req.CustomerPhone
		battery, err := tx.GetBattery(ctx, req.BatterySerial)
		switch {
		case err == nil:
			battery.Status = models.StatusPending
			battery.CurrentOwnerPhone = &phone
			battery.TicketID = req.TicketID
			battery.VehicleNo = req.VehicleNo
			battery.DateOfPurchase = req.PurchaseDate
			battery.HasLoaner = req.HasLoaner
			if err := tx.UpdateBattery(ctx, battery); err != nil {
				return err
			}
		case errors.Is(err, repositories.ErrNotFound):
			err := tx.CreateBattery(ctx, &models.Battery{
				SerialNo:          req.BatterySerial,
				Status:            models.StatusPending,
				DateOfPurchase:    req.PurchaseDate,
				CurrentOwnerPhone: &phone,
				TicketID:          req.TicketID,
				VehicleNo:         req.VehicleNo,
				HasLoaner:         req.HasLoaner,
			})
			if err != nil {
				return err
			}
		default:
			return err
		}

		serial := req.BatterySerial
		return tx.AppendExchange(ctx, &models.Exchange{
			Date:             timeutil.Stamp(),
			OldBatterySerial: req.BatterySerial,
			NewBatterySerial: &serial,
			CustomerPhone:    req.CustomerPhone,
			ActionTaken:      models.ActionServicePending,
			Notes:            fmt.Sprintf("Ticket: %s. %s", req.TicketID, req.Notes),
		})
	})
	if err == nil {
		metrics.ExchangesRecorded.WithLabelValues(models.ActionServicePending).Inc()
	}
	return err
}

// ProcessReturnToCustomer hands a serviced unit back to its owner. Unknown
// serials fail with ErrNotFound. Note: the loaner flag on the battery row is
// intentionally left as-is even when the loaner comes back; the flag records
// that a loaner was issued on the ticket.
func (s *WarrantyService) ProcessReturnToCustomer(ctx context.Context, serial, phone string, returnLoaner bool) error {
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		if _, err := tx.GetBattery(ctx, serial); err != nil {
			return err
		}
		if err := tx.SetBatteryStatus(ctx, serial, models.StatusActiveWithCustomer); err != nil {
			return err
		}

		notes := "Service completed, battery returned."
		if returnLoaner {
			notes = "Service completed, battery returned. Loaner battery collected back."
		}
		return tx.AppendExchange(ctx, &models.Exchange{
			Date:             timeutil.Stamp(),
			OldBatterySerial: serial,
			CustomerPhone:    phone,
			ActionTaken:      models.ActionReturnedToCustomer,
			Notes:            notes,
		})
	})
	if err == nil {
		metrics.ExchangesRecorded.WithLabelValues(models.ActionReturnedToCustomer).Inc()
	}
	return err
}

// ProcessStockReception marks a unit received back from the factory. An
// unknown serial is a silent no-op on the battery side; the receipt is
// still logged against the factory's phone literal.
func (s *WarrantyService) ProcessStockReception(ctx context.Context, serial, model string) error {
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		_, err := tx.GetBattery(ctx, serial)
		if err == nil {
			if err := tx.SetBatteryStatus(ctx, serial, models.StatusInStock); err != nil {
				return err
			}
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		return tx.AppendExchange(ctx, &models.Exchange{
			Date:             timeutil.Stamp(),
			OldBatterySerial: serial,
			CustomerPhone:    models.FactoryPhone,
			ActionTaken:      models.ActionStockReceived,
			Notes:            fmt.Sprintf("Received stock: %s", model),
		})
	})
	if err == nil {
		metrics.ExchangesRecorded.WithLabelValues(models.ActionStockReceived).Inc()
	}
	return err
}

// UpsertBattery is the generic upsert behind the factory stock-loan flow.
// On update the model is left untouched and the purchase date only changes
// when one was supplied.
func (s *WarrantyService) UpsertBattery(ctx context.Context, serial, model, status, soldDate, purchaseDate, phone, ticket, vehicle string) error {
	return s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		var owner *string
		if phone != "" {
			owner = &phone
		}

		battery, err := tx.GetBattery(ctx, serial)
		switch {
		case err == nil:
			battery.Status = status
			battery.TicketID = ticket
			battery.CurrentOwnerPhone = owner
			battery.VehicleNo = vehicle
			if purchaseDate != "" {
				battery.DateOfPurchase = purchaseDate
			}
			return tx.UpdateBattery(ctx, battery)
		case errors.Is(err, repositories.ErrNotFound):
			return tx.CreateBattery(ctx, &models.Battery{
				SerialNo:          serial,
				ModelType:         model,
				Status:            status,
				SoldDate:          soldDate,
				DateOfPurchase:    purchaseDate,
				CurrentOwnerPhone: owner,
				TicketID:          ticket,
				VehicleNo:         vehicle,
			})
		default:
			return err
		}
	})
}

// AddInventoryStock creates a fresh in_stock battery. A duplicate serial
// surfaces as ErrDuplicateSerial with the original row left unchanged.
func (s *WarrantyService) AddInventoryStock(ctx context.Context, serial, model, purchaseDate string) error {
	return s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.TxStore) error {
		return tx.CreateBattery(ctx, &models.Battery{
			SerialNo:       serial,
			ModelType:      model,
			Status:         models.StatusInStock,
			DateOfPurchase: purchaseDate,
		})
	})
}
