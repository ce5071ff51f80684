package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ativ97/battery-management/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT phone, COALESCE(name, ''), COALESCE(created_at, '')
         FROM customers WHERE phone=$1`, phone)

	var customer models.Customer
	if err := row.Scan(&customer.Phone, &customer.Name, &customer.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}
