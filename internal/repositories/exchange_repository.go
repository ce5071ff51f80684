package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ativ97/battery-management/internal/models"
)

const exchangeColumns = `id, COALESCE(date, ''), COALESCE(old_battery_serial, ''),
        new_battery_serial, COALESCE(customer_phone, ''), COALESCE(action_taken, ''), COALESCE(notes, '')`

type ExchangeRepository struct {
	DB *pgxpool.Pool
}

func NewExchangeRepository(db *pgxpool.Pool) *ExchangeRepository {
	return &ExchangeRepository{DB: db}
}

func collectExchanges(rows pgx.Rows) ([]*models.Exchange, error) {
	defer rows.Close()

	var exchanges []*models.Exchange
	for rows.Next() {
		var e models.Exchange
		err := rows.Scan(&e.ID, &e.Date, &e.OldBatterySerial, &e.NewBatterySerial,
			&e.CustomerPhone, &e.ActionTaken, &e.Notes)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, &e)
	}
	return exchanges, rows.Err()
}

// ListRecent returns the newest entries first, capped at limit.
func (r *ExchangeRepository) ListRecent(ctx context.Context, limit int) ([]*models.Exchange, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+exchangeColumns+` FROM exchanges ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectExchanges(rows)
}

// ListBySerial returns every entry that mentions the serial on either side
// of the exchange, oldest first.
func (r *ExchangeRepository) ListBySerial(ctx context.Context, serial string) ([]*models.Exchange, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+exchangeColumns+` FROM exchanges
         WHERE old_battery_serial=$1 OR new_battery_serial=$1 ORDER BY id`, serial)
	if err != nil {
		return nil, err
	}
	return collectExchanges(rows)
}

func (r *ExchangeRepository) ListByPhone(ctx context.Context, phone string) ([]*models.Exchange, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+exchangeColumns+` FROM exchanges WHERE customer_phone=$1 ORDER BY id`, phone)
	if err != nil {
		return nil, err
	}
	return collectExchanges(rows)
}

func (r *ExchangeRepository) ListByAction(ctx context.Context, action string) ([]*models.Exchange, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+exchangeColumns+` FROM exchanges WHERE action_taken=$1 ORDER BY id DESC`, action)
	if err != nil {
		return nil, err
	}
	return collectExchanges(rows)
}

func (r *ExchangeRepository) CountByAction(ctx context.Context, action string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM exchanges WHERE action_taken=$1`, action).Scan(&count)
	return count, err
}

func (r *ExchangeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM exchanges`).Scan(&count)
	return count, err
}
