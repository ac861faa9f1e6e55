package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/weeraman/plantation-erp/internal/domain"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) ActiveLandsCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM lands WHERE status = 'active'`)
	return count, err
}

func (r *reportRepository) ActiveLoansCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM loans WHERE status = 'active'`)
	return count, err
}

func (r *reportRepository) PendingOrdersCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM manufacturing_orders WHERE status IN ('planned', 'in-progress')`)
	return count, err
}

func (r *reportRepository) MonthlyRevenue(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM sales_invoices
		WHERE status != 'cancelled'
		  AND date_part('month', date) = $1
		  AND date_part('year', date) = $2
	`

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, int(now.Month()), now.Year())
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *reportRepository) RevenueSeries(ctx context.Context, months int) ([]*domain.MonthRevenue, error) {
	query := `
		SELECT to_char(date_trunc('month', date), 'Mon') AS month,
		       COALESCE(SUM(total), 0) AS revenue
		FROM sales_invoices
		WHERE status != 'cancelled'
		  AND date >= date_trunc('month', CURRENT_DATE) - make_interval(months => $1 - 1)
		GROUP BY date_trunc('month', date)
		ORDER BY date_trunc('month', date)
	`

	var series []*domain.MonthRevenue
	if err := r.db.SelectContext(ctx, &series, query, months); err != nil {
		return nil, err
	}

	return series, nil
}
