package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/application/seminar"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

// WithTx serializes admissions per event: AttendanceForUpdate takes the
// per-event attendance row FOR UPDATE, so the read-check-write sequence of
// two concurrent admissions for the same event cannot interleave.
func (r *Repo) WithTx(ctx context.Context, fn func(tx seminar.TxRepo) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
		ReadOnly:  false,
	})
	if err != nil {
		return err
	}

	tr := &txRepo{tx: tx}

	defer func() {
		// Safety: in case fn panics, rollback to avoid leaked tx.
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tr); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txRepo struct {
	tx *sql.Tx
}

func (r *txRepo) GetEventForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return scanEvent(r.tx.QueryRowContext(ctx, getEventForUpdateSQL, id))
}

func (r *txRepo) UpdateEvent(ctx context.Context, e *domain.Event) error {
	args, err := eventArgs(e)
	if err != nil {
		return err
	}
	// updateEventSQL reuses the insert arg order minus the immutable
	// id/record_type/topic_id/created_at columns
	params := append([]any{e.ID}, args[3:27]...)
	params = append(params, e.UpdatedAt)
	_, err = r.tx.ExecContext(ctx, updateEventSQL, params...)
	return err
}

func (r *txRepo) AttendanceForUpdate(ctx context.Context, eventID string) (domain.AttendanceCounts, error) {
	var c domain.AttendanceCounts
	err := r.tx.QueryRowContext(ctx, getAttendanceForUpdateSQL, eventID).
		Scan(&c.RegularSeats, &c.QueueSeats, &c.OfflineSeats, &c.PaidSeats)
	if err == sql.ErrNoRows {
		// first admission for this event: create the row, then lock and
		// re-read it. A concurrent bootstrap blocks on the unique key and
		// must see whatever the winner committed, not its own zeros.
		if _, err := r.tx.ExecContext(ctx, insertAttendanceIfAbsentSQL, eventID, time.Now().UTC()); err != nil {
			return domain.AttendanceCounts{}, err
		}
		err = r.tx.QueryRowContext(ctx, getAttendanceForUpdateSQL, eventID).
			Scan(&c.RegularSeats, &c.QueueSeats, &c.OfflineSeats, &c.PaidSeats)
	}
	if err != nil {
		return domain.AttendanceCounts{}, err
	}
	return c, nil
}

func (r *txRepo) SaveAttendance(ctx context.Context, eventID string, c domain.AttendanceCounts) error {
	_, err := r.tx.ExecContext(ctx, upsertAttendanceSQL,
		eventID, c.RegularSeats, c.QueueSeats, c.OfflineSeats, c.PaidSeats, time.Now().UTC(),
	)
	return err
}

func (r *txRepo) CreateRegistration(ctx context.Context, reg *domain.Registration) error {
	attendeeData, err := jsonText(reg.AttendeeData)
	if err != nil {
		return err
	}
	_, err = r.tx.ExecContext(ctx, insertRegistrationSQL,
		reg.ID, reg.EventID, reg.UserID, reg.Seats, reg.OnQueue,
		reg.PaymentDate, reg.CanceledAt,
		attendeeData, reg.CreatedAt, reg.UpdatedAt,
	)
	return err
}

func (r *txRepo) UpdateRegistration(ctx context.Context, reg *domain.Registration) error {
	_, err := r.tx.ExecContext(ctx, updateRegistrationSQL,
		reg.ID, reg.Seats, reg.OnQueue, reg.PaymentDate, reg.CanceledAt, reg.UpdatedAt,
	)
	return err
}

func (r *txRepo) OldestQueued(ctx context.Context, eventID string, maxSeats int) (*domain.Registration, error) {
	return scanRegistration(r.tx.QueryRowContext(ctx, oldestQueuedSQL, eventID, maxSeats))
}
