package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/weeraman/plantation-erp/internal/domain"
)

type landRepository struct {
	db *sqlx.DB
}

func NewLandRepository(db *sqlx.DB) LandRepository {
	return &landRepository{db: db}
}

func (r *landRepository) Create(ctx context.Context, land *domain.Land) error {
	query := `
		INSERT INTO lands (id, land_number, name, location, area_hectares, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		land.ID,
		land.LandNumber,
		land.Name,
		land.Location,
		land.AreaHectares,
		land.Status,
		land.CreatedAt,
		land.UpdatedAt,
	)

	return err
}

func (r *landRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Land, error) {
	query := `
		SELECT id, land_number, name, location, area_hectares, status, created_at, updated_at
		FROM lands
		WHERE id = $1
	`

	var land domain.Land
	if err := r.db.GetContext(ctx, &land, query, id); err != nil {
		return nil, err
	}

	return &land, nil
}

func (r *landRepository) GetByLandNumber(ctx context.Context, landNumber string) (*domain.Land, error) {
	query := `
		SELECT id, land_number, name, location, area_hectares, status, created_at, updated_at
		FROM lands
		WHERE land_number = $1
	`

	var land domain.Land
	if err := r.db.GetContext(ctx, &land, query, landNumber); err != nil {
		return nil, err
	}

	return &land, nil
}

func (r *landRepository) ListActiveWithAssignments(ctx context.Context) ([]*domain.LandWithAssignment, error) {
	query := `
		SELECT l.id, l.land_number, l.name, l.location, l.area_hectares, l.status,
		       l.created_at, l.updated_at,
		       la.contractor_id, la.start_date AS assignment_start,
		       la.end_date AS assignment_end, la.status AS assignment_status
		FROM lands l
		LEFT JOIN land_assignments la ON l.id = la.land_id AND la.status = 'active'
		WHERE l.status = 'active'
		ORDER BY l.created_at DESC
	`

	var lands []*domain.LandWithAssignment
	if err := r.db.SelectContext(ctx, &lands, query); err != nil {
		return nil, err
	}

	return lands, nil
}

func (r *landRepository) Update(ctx context.Context, land *domain.Land) error {
	query := `
		UPDATE lands
		SET name = $2, location = $3, area_hectares = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		land.ID,
		land.Name,
		land.Location,
		land.AreaHectares,
		land.Status,
		time.Now(),
	)

	return err
}

func (r *landRepository) Assign(ctx context.Context, assignment *domain.LandAssignment) error {
	query := `
		INSERT INTO land_assignments (id, land_id, contractor_id, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.LandID,
		assignment.ContractorID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.Status,
		assignment.CreatedAt,
	)

	return err
}
