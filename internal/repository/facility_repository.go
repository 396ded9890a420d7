package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// FacilitySearch captures catalog search parameters. Nil fields are no-ops.
type FacilitySearch struct {
	Name        *string
	MinCapacity *int
}

// FacilityRepository encapsulates facility persistence.
type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) error
	Update(ctx context.Context, facility *domain.Facility) error
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	List(ctx context.Context) ([]domain.Facility, error)
	Search(ctx context.Context, search FacilitySearch) ([]domain.Facility, error)
	Delete(ctx context.Context, id int64) error
}

type facilityRepository struct {
	pool *pgxpool.Pool
}

// NewFacilityRepository instantiates repository.
func NewFacilityRepository(pool *pgxpool.Pool) FacilityRepository {
	return &facilityRepository{pool: pool}
}

const facilityColumns = `id, name, description, capacity, location, image_url, created_at, updated_at`

func (r *facilityRepository) Create(ctx context.Context, facility *domain.Facility) error {
	const query = `
        INSERT INTO facilities (name, description, capacity, location, image_url)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		facility.Name,
		facility.Description,
		facility.Capacity,
		facility.Location,
		facility.ImageURL,
	).Scan(&facility.ID, &facility.CreatedAt, &facility.UpdatedAt)
}

func (r *facilityRepository) Update(ctx context.Context, facility *domain.Facility) error {
	const query = `
        UPDATE facilities SET name=$1, description=$2, capacity=$3, location=$4, image_url=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		facility.Name,
		facility.Description,
		facility.Capacity,
		facility.Location,
		facility.ImageURL,
		facility.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *facilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	var facility domain.Facility
	if err := r.pool.QueryRow(ctx, `SELECT `+facilityColumns+` FROM facilities WHERE id=$1`, id).Scan(
		&facility.ID,
		&facility.Name,
		&facility.Description,
		&facility.Capacity,
		&facility.Location,
		&facility.ImageURL,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &facility, nil
}

func (r *facilityRepository) List(ctx context.Context) ([]domain.Facility, error) {
	return r.Search(ctx, FacilitySearch{})
}

func (r *facilityRepository) Search(ctx context.Context, search FacilitySearch) ([]domain.Facility, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if search.Name != nil && strings.TrimSpace(*search.Name) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*search.Name))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	if search.MinCapacity != nil {
		args = append(args, *search.MinCapacity)
		clauses = append(clauses, fmt.Sprintf("capacity >= $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM facilities WHERE %s ORDER BY id`,
		facilityColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Facility
	for rows.Next() {
		var facility domain.Facility
		if err := rows.Scan(
			&facility.ID,
			&facility.Name,
			&facility.Description,
			&facility.Capacity,
			&facility.Location,
			&facility.ImageURL,
			&facility.CreatedAt,
			&facility.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, facility)
	}
	return result, rows.Err()
}

func (r *facilityRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM facilities WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
