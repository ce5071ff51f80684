package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ativ97/battery-management/internal/models"
)

const batteryColumns = `serial_no, COALESCE(model_type, ''), COALESCE(status, ''),
        COALESCE(sold_date, ''), COALESCE(date_of_purchase, ''), COALESCE(warranty_expiry, ''),
        current_owner_phone, COALESCE(ticket_id, ''), COALESCE(vehicle_no, ''), has_loaner`

type BatteryRepository struct {
	DB *pgxpool.Pool
}

func NewBatteryRepository(db *pgxpool.Pool) *BatteryRepository {
	return &BatteryRepository{DB: db}
}

func scanBattery(row pgx.Row) (*models.Battery, error) {
	var b models.Battery
	err := row.Scan(&b.SerialNo, &b.ModelType, &b.Status, &b.SoldDate, &b.DateOfPurchase,
		&b.WarrantyExpiry, &b.CurrentOwnerPhone, &b.TicketID, &b.VehicleNo, &b.HasLoaner)
	if err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

func collectBatteries(rows pgx.Rows) ([]*models.Battery, error) {
	defer rows.Close()

	var batteries []*models.Battery
	for rows.Next() {
		b, err := scanBattery(rows)
		if err != nil {
			return nil, err
		}
		batteries = append(batteries, b)
	}
	return batteries, rows.Err()
}

func (r *BatteryRepository) GetBySerial(ctx context.Context, serial string) (*models.Battery, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+batteryColumns+` FROM batteries WHERE serial_no=$1`, serial)
	return scanBattery(row)
}

// ListByStatuses returns batteries whose status is any of the given values,
// ordered by serial for stable display.
func (r *BatteryRepository) ListByStatuses(ctx context.Context, statuses []string) ([]*models.Battery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+batteryColumns+` FROM batteries WHERE status = ANY($1) ORDER BY serial_no`, statuses)
	if err != nil {
		return nil, err
	}
	return collectBatteries(rows)
}

// ListByOwner returns every battery currently attached to a phone number.
func (r *BatteryRepository) ListByOwner(ctx context.Context, phone string) ([]*models.Battery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+batteryColumns+` FROM batteries WHERE current_owner_phone=$1 ORDER BY serial_no`, phone)
	if err != nil {
		return nil, err
	}
	return collectBatteries(rows)
}

// ListByOwnerAndStatuses narrows ListByOwner to a status set; it backs the
// ready-for-pickup lookup on the pickup tab.
func (r *BatteryRepository) ListByOwnerAndStatuses(ctx context.Context, phone string, statuses []string) ([]*models.Battery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+batteryColumns+` FROM batteries
         WHERE current_owner_phone=$1 AND status = ANY($2) ORDER BY serial_no`, phone, statuses)
	if err != nil {
		return nil, err
	}
	return collectBatteries(rows)
}

func (r *BatteryRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM batteries WHERE status=$1`, status).Scan(&count)
	return count, err
}

// Create inserts a fresh battery row. A duplicate serial surfaces as
// ErrDuplicateSerial with the original row left untouched.
func (r *BatteryRepository) Create(ctx context.Context, b *models.Battery) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO batteries(serial_no, model_type, status, sold_date, date_of_purchase,
             warranty_expiry, current_owner_phone, ticket_id, vehicle_no, has_loaner)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.SerialNo, b.ModelType, b.Status, b.SoldDate, b.DateOfPurchase,
		b.WarrantyExpiry, b.CurrentOwnerPhone, b.TicketID, b.VehicleNo, b.HasLoaner)
	return translateError(err)
}
