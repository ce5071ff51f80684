package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ativ97/battery-management/internal/models"
)

const scrapColumns = `serial_no, COALESCE(model_type, ''), COALESCE(received_date, ''),
        COALESCE(customer_phone, ''), COALESCE(ticket_id, ''), COALESCE(notes, '')`

// ScrapStore is the port the disposal pipeline runs against.
type ScrapStore interface {
	ListScrap(ctx context.Context) ([]*models.ScrapBattery, error)
	ListChallan(ctx context.Context) ([]*models.ChallanBattery, error)
	ListArchive(ctx context.Context) ([]*models.ArchivedScrapBattery, error)
	MoveScrapToChallan(ctx context.Context, serials []string, challanDate string) (int, error)
	ClearChallanToArchive(ctx context.Context, finalDate string) (int, error)
}

type ScrapRepository struct {
	DB *pgxpool.Pool
}

func NewScrapRepository(db *pgxpool.Pool) *ScrapRepository {
	return &ScrapRepository{DB: db}
}

func (r *ScrapRepository) Create(ctx context.Context, s *models.ScrapBattery) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO scrap_batteries(serial_no, model_type, received_date, customer_phone, ticket_id, notes)
         VALUES($1, $2, $3, $4, $5, $6)`,
		s.SerialNo, s.ModelType, s.ReceivedDate, s.CustomerPhone, s.TicketID, s.Notes)
	return translateError(err)
}

func (r *ScrapRepository) ListScrap(ctx context.Context) ([]*models.ScrapBattery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+scrapColumns+` FROM scrap_batteries ORDER BY serial_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scraps []*models.ScrapBattery
	for rows.Next() {
		var s models.ScrapBattery
		err := rows.Scan(&s.SerialNo, &s.ModelType, &s.ReceivedDate,
			&s.CustomerPhone, &s.TicketID, &s.Notes)
		if err != nil {
			return nil, err
		}
		scraps = append(scraps, &s)
	}
	return scraps, rows.Err()
}

func (r *ScrapRepository) ListChallan(ctx context.Context) ([]*models.ChallanBattery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+scrapColumns+`, COALESCE(challan_date, '') FROM challan_batteries ORDER BY serial_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challans []*models.ChallanBattery
	for rows.Next() {
		var c models.ChallanBattery
		err := rows.Scan(&c.SerialNo, &c.ModelType, &c.ReceivedDate,
			&c.CustomerPhone, &c.TicketID, &c.Notes, &c.ChallanDate)
		if err != nil {
			return nil, err
		}
		challans = append(challans, &c)
	}
	return challans, rows.Err()
}

func (r *ScrapRepository) ListArchive(ctx context.Context) ([]*models.ArchivedScrapBattery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+scrapColumns+`, COALESCE(challan_date, ''), COALESCE(final_archived_date, '')
         FROM audit_scrap_batteries ORDER BY serial_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archived []*models.ArchivedScrapBattery
	for rows.Next() {
		var a models.ArchivedScrapBattery
		err := rows.Scan(&a.SerialNo, &a.ModelType, &a.ReceivedDate, &a.CustomerPhone,
			&a.TicketID, &a.Notes, &a.ChallanDate, &a.FinalArchivedDate)
		if err != nil {
			return nil, err
		}
		archived = append(archived, &a)
	}
	return archived, rows.Err()
}

// MoveScrapToChallan moves the selected serials from the scrap pool onto an
// open challan in one transaction. Each move is a delete+insert pair; serials
// absent from the scrap pool are skipped. Returns how many rows moved.
func (r *ScrapRepository) MoveScrapToChallan(ctx context.Context, serials []string, challanDate string) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO challan_batteries(serial_no, model_type, received_date, customer_phone, ticket_id, notes, challan_date)
         SELECT serial_no, model_type, received_date, customer_phone, ticket_id, notes, $2
         FROM scrap_batteries WHERE serial_no = ANY($1)`,
		serials, challanDate)
	if err != nil {
		return 0, translateError(err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM scrap_batteries WHERE serial_no = ANY($1)`, serials)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ClearChallanToArchive stamps every open challan row with the final date and
// moves the lot into the audit archive in one transaction.
func (r *ScrapRepository) ClearChallanToArchive(ctx context.Context, finalDate string) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO audit_scrap_batteries(serial_no, model_type, received_date, customer_phone, ticket_id, notes, challan_date, final_archived_date)
         SELECT serial_no, model_type, received_date, customer_phone, ticket_id, notes, challan_date, $1
         FROM challan_batteries`,
		finalDate)
	if err != nil {
		return 0, translateError(err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM challan_batteries`)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
