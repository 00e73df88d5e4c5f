package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayBack/internal/models"
)

type ReservationRepository struct {
	DB *sql.DB
}

// CreateReservation inserts a pending reservation after checking that the
// requested range does not overlap any pending or active reservation of the
// same property. The property row is locked for the duration of the
// transaction so two concurrent requests cannot both pass the check.
func (r *ReservationRepository) CreateReservation(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return models.Reservation{}, err
	}
	defer tx.Rollback()

	var ownerID int
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM properties WHERE id = ? FOR UPDATE`, res.PropertyID,
	).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reservation{}, models.ErrPropertyNotFound
	}
	if err != nil {
		return models.Reservation{}, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT checkin_date, checkout_date FROM reservations
         WHERE property_id = ? AND status IN ('pending', 'active')`, res.PropertyID)
	if err != nil {
		return models.Reservation{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var checkin, checkout time.Time
		if err := rows.Scan(&checkin, &checkout); err != nil {
			return models.Reservation{}, err
		}
		if models.Overlaps(checkin, checkout, res.CheckinDate, res.CheckoutDate) {
			return models.Reservation{}, models.ErrReservationConflict
		}
	}
	if err := rows.Err(); err != nil {
		return models.Reservation{}, err
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (property_id, user_id, checkin_date, checkout_date, status, evaluation, created_at)
         VALUES (?, ?, ?, ?, ?, false, ?)`,
		res.PropertyID, res.UserID, res.CheckinDate, res.CheckoutDate, models.ReservationStatusPending, now,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Reservation{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Reservation{}, err
	}

	res.ID = int(id)
	res.OwnerID = ownerID
	res.Status = models.ReservationStatusPending
	res.CreatedAt = now
	return res, nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id int) (models.Reservation, error) {
	var res models.Reservation
	query := `
        SELECT r.id, r.property_id, r.user_id, p.user_id, r.checkin_date, r.checkout_date,
               r.status, r.evaluation, r.rating, r.comment, r.created_at, r.updated_at
        FROM reservations r
        JOIN properties p ON p.id = r.property_id
        WHERE r.id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.PropertyID, &res.UserID, &res.OwnerID, &res.CheckinDate, &res.CheckoutDate,
		&res.Status, &res.Evaluation, &res.Rating, &res.Comment, &res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reservation{}, models.ErrReservationNotFound
	}
	if err != nil {
		return models.Reservation{}, err
	}
	return res, nil
}

// UpdateStatus moves a reservation to a new status only if its current status
// is one of from. Zero affected rows means the reservation was not in an
// allowed source status (or was changed concurrently).
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int, from []models.ReservationStatus, to models.ReservationStatus) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(from)), ",")
	query := fmt.Sprintf(
		`UPDATE reservations SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (%s)`,
		placeholders,
	)

	args := make([]interface{}, 0, len(from)+2)
	args = append(args, to, id)
	for _, s := range from {
		args = append(args, s)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}

// Evaluate marks the reservation evaluated, materializes the comment and
// recomputes the property's mean rating over all evaluated reservations, all
// in one transaction. The reservation row is locked so a concurrent second
// evaluation observes the flag.
func (r *ReservationRepository) Evaluate(ctx context.Context, id int, rating int, comment string) (float64, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var propertyID, userID int
	var evaluated bool
	err = tx.QueryRowContext(ctx,
		`SELECT property_id, user_id, evaluation FROM reservations WHERE id = ? FOR UPDATE`, id,
	).Scan(&propertyID, &userID, &evaluated)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrReservationNotFound
	}
	if err != nil {
		return 0, err
	}
	if evaluated {
		return 0, models.ErrAlreadyEvaluated
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reservations SET evaluation = true, rating = ?, comment = ?, updated_at = NOW() WHERE id = ?`,
		rating, comment, id,
	)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO comments (property_id, reservation_id, user_id, body, created_at)
         VALUES (?, ?, ?, ?, NOW())`,
		propertyID, id, userID, comment,
	)
	if err != nil {
		return 0, err
	}

	var avg sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM reservations WHERE property_id = ? AND evaluation = true`, propertyID,
	).Scan(&avg)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE properties SET rating = ?, updated_at = NOW() WHERE id = ?`, avg.Float64, propertyID,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *ReservationRepository) GetReservationsByPropertyID(ctx context.Context, propertyID int) ([]models.Reservation, error) {
	query := `
        SELECT r.id, r.property_id, r.user_id, p.user_id, r.checkin_date, r.checkout_date,
               r.status, r.evaluation, r.rating, r.comment, r.created_at, r.updated_at
        FROM reservations r
        JOIN properties p ON p.id = r.property_id
        WHERE r.property_id = ?
        ORDER BY r.created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		err := rows.Scan(
			&res.ID, &res.PropertyID, &res.UserID, &res.OwnerID, &res.CheckinDate, &res.CheckoutDate,
			&res.Status, &res.Evaluation, &res.Rating, &res.Comment, &res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// FinishPastReservations closes out active stays whose checkout date has
// passed. Used by the background finisher in cmd.
func (r *ReservationRepository) FinishPastReservations(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE reservations SET status = ?, updated_at = NOW() WHERE status = ? AND checkout_date < ?`,
		models.ReservationStatusFinished, models.ReservationStatusActive, now,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
