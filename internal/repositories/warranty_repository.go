package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ativ97/battery-management/internal/models"
)

// TxStore is the set of row-level operations a lifecycle step runs inside a
// single transaction. Lookups return ErrNotFound when no row matches.
type TxStore interface {
	GetCustomer(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	UpdateCustomerName(ctx context.Context, phone, name string) error

	GetBattery(ctx context.Context, serial string) (*models.Battery, error)
	CreateBattery(ctx context.Context, b *models.Battery) error
	UpdateBattery(ctx context.Context, b *models.Battery) error
	SetBatteryStatus(ctx context.Context, serial, status string) error

	CreateScrap(ctx context.Context, s *models.ScrapBattery) error

	AppendExchange(ctx context.Context, e *models.Exchange) error
}

// WarrantyStore is the unit-of-work port the lifecycle engine runs against.
// The callback either commits as a whole or rolls back as a whole.
type WarrantyStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
}

type WarrantyRepository struct {
	DB *pgxpool.Pool
}

func NewWarrantyRepository(db *pgxpool.Pool) *WarrantyRepository {
	return &WarrantyRepository{DB: db}
}

func (r *WarrantyRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txStore{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type txStore struct {
	tx pgx.Tx
}

func (s *txStore) GetCustomer(ctx context.Context, phone string) (*models.Customer, error) {
	var c models.Customer
	err := s.tx.QueryRow(ctx,
		`SELECT phone, COALESCE(name, ''), COALESCE(created_at, '') FROM customers WHERE phone=$1`,
		phone).Scan(&c.Phone, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (s *txStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO customers(phone, name, created_at) VALUES($1, $2, $3)`,
		c.Phone, c.Name, c.CreatedAt)
	return translateError(err)
}

func (s *txStore) UpdateCustomerName(ctx context.Context, phone, name string) error {
	_, err := s.tx.Exec(ctx, `UPDATE customers SET name=$1 WHERE phone=$2`, name, phone)
	return err
}

func (s *txStore) GetBattery(ctx context.Context, serial string) (*models.Battery, error) {
	row := s.tx.QueryRow(ctx,
		`SELECT `+batteryColumns+` FROM batteries WHERE serial_no=$1`, serial)
	return scanBattery(row)
}

func (s *txStore) CreateBattery(ctx context.Context, b *models.Battery) error {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO batteries(serial_no, model_type, status, sold_date, date_of_purchase,
             warranty_expiry, current_owner_phone, ticket_id, vehicle_no, has_loaner)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.SerialNo, b.ModelType, b.Status, b.SoldDate, b.DateOfPurchase,
		b.WarrantyExpiry, b.CurrentOwnerPhone, b.TicketID, b.VehicleNo, b.HasLoaner)
	return translateError(err)
}

func (s *txStore) UpdateBattery(ctx context.Context, b *models.Battery) error {
	_, err := s.tx.Exec(ctx,
		`UPDATE batteries SET model_type=$2, status=$3, sold_date=$4, date_of_purchase=$5,
             warranty_expiry=$6, current_owner_phone=$7, ticket_id=$8, vehicle_no=$9, has_loaner=$10
         WHERE serial_no=$1`,
		b.SerialNo, b.ModelType, b.Status, b.SoldDate, b.DateOfPurchase,
		b.WarrantyExpiry, b.CurrentOwnerPhone, b.TicketID, b.VehicleNo, b.HasLoaner)
	return err
}

func (s *txStore) SetBatteryStatus(ctx context.Context, serial, status string) error {
	_, err := s.tx.Exec(ctx, `UPDATE batteries SET status=$1 WHERE serial_no=$2`, status, serial)
	return err
}

func (s *txStore) CreateScrap(ctx context.Context, scrap *models.ScrapBattery) error {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO scrap_batteries(serial_no, model_type, received_date, customer_phone, ticket_id, notes)
         VALUES($1, $2, $3, $4, $5, $6)`,
		scrap.SerialNo, scrap.ModelType, scrap.ReceivedDate, scrap.CustomerPhone, scrap.TicketID, scrap.Notes)
	return translateError(err)
}

func (s *txStore) AppendExchange(ctx context.Context, e *models.Exchange) error {
	return s.tx.QueryRow(ctx,
		`INSERT INTO exchanges(date, old_battery_serial, new_battery_serial, customer_phone, action_taken, notes)
         VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
		e.Date, e.OldBatterySerial, e.NewBatterySerial, e.CustomerPhone, e.ActionTaken, e.Notes).Scan(&e.ID)
}
