package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// ReservationFilter captures listing parameters. Nil fields are no-ops.
type ReservationFilter struct {
	UserID     *int64
	FacilityID *int64
	Status     *domain.ReservationStatus
	StartAfter *time.Time
}

// ReservationRepository encapsulates reservation persistence.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error)
	FindOverlapping(ctx context.Context, facilityID int64, start, end time.Time) ([]domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository instantiates repository.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationColumns = `id, facility_id, user_id, start_time, end_time, purpose, status, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	const query = `
        INSERT INTO reservations (facility_id, user_id, start_time, end_time, purpose, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		reservation.FacilityID,
		reservation.UserID,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Purpose,
		reservation.Status,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	const query = `
        UPDATE reservations SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + reservationColumns
	return r.scanOne(r.pool.QueryRow(ctx, query, status, id))
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id))
}

func (r *reservationRepository) scanOne(row pgx.Row) (*domain.Reservation, error) {
	var reservation domain.Reservation
	if err := row.Scan(
		&reservation.ID,
		&reservation.FacilityID,
		&reservation.UserID,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Purpose,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.FacilityID != nil {
		args = append(args, *filter.FacilityID)
		clauses = append(clauses, fmt.Sprintf("facility_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.StartAfter != nil {
		args = append(args, *filter.StartAfter)
		clauses = append(clauses, fmt.Sprintf("start_time > $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM reservations WHERE %s ORDER BY start_time`,
		reservationColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// FindOverlapping returns PENDING or APPROVED reservations on the facility
// whose window intersects [start, end) under half-open semantics.
func (r *reservationRepository) FindOverlapping(ctx context.Context, facilityID int64, start, end time.Time) ([]domain.Reservation, error) {
	const query = `
        SELECT ` + reservationColumns + `
        FROM reservations
        WHERE facility_id=$1
          AND status IN ('PENDING','APPROVED')
          AND start_time < $3
          AND $2 < end_time`
	rows, err := r.pool.Query(ctx, query, facilityID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for rows.Next() {
		var reservation domain.Reservation
		if err := rows.Scan(
			&reservation.ID,
			&reservation.FacilityID,
			&reservation.UserID,
			&reservation.StartTime,
			&reservation.EndTime,
			&reservation.Purpose,
			&reservation.Status,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reservation)
	}
	return result, rows.Err()
}
