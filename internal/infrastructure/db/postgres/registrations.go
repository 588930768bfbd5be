package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

// RegistrationRepo serves registration reads and the collision detector's
// booking windows from the same database as the event repo.
type RegistrationRepo struct {
	db *sql.DB
}

func NewRegistrations(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var r domain.Registration
	var attendeeData string

	err := row.Scan(
		&r.ID, &r.EventID, &r.UserID, &r.Seats, &r.OnQueue,
		&r.PaymentDate, &r.CanceledAt,
		&attendeeData, &r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("registration not found")
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(attendeeData), &r.AttendeeData); err != nil {
		return nil, fmt.Errorf("decode attendee_data for registration %s: %w", r.ID, err)
	}
	return &r, nil
}

func (r *RegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return scanRegistration(r.db.QueryRowContext(ctx, getRegistrationSQL, id))
}

func (r *RegistrationRepo) GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	return scanRegistration(r.db.QueryRowContext(ctx, getActiveRegistrationSQL, eventID, userID))
}

// BookingsFor returns the time windows of events the user actively attends
// (regular list only; waiting-list seats don't block the calendar).
func (r *RegistrationRepo) BookingsFor(ctx context.Context, userID string) ([]domain.TimeWindow, error) {
	rows, err := r.db.QueryContext(ctx, userBookingsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TimeWindow
	for rows.Next() {
		var begin, end sql.NullTime
		if err := rows.Scan(&begin, &end); err != nil {
			return nil, err
		}
		out = append(out, domain.TimeWindow{
			Begin: timeOrZero(begin),
			End:   timeOrZero(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
