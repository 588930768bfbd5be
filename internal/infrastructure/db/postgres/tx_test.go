package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/application/seminar"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

var attendanceColumnNames = []string{"regular_seats", "queue_seats", "offline_seats", "paid_seats"}

func TestWithTx(t *testing.T) {
	t.Run("commits_on_success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		err = New(db).WithTx(context.Background(), func(tx seminar.TxRepo) error {
			return nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls_back_on_error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = New(db).WithTx(context.Background(), func(tx seminar.TxRepo) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTxRepo_AttendanceForUpdate(t *testing.T) {
	t.Run("existing_row_locked_and_read", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM event_attendance (.+) FOR UPDATE").
			WithArgs("evt_1").
			WillReturnRows(sqlmock.NewRows(attendanceColumnNames).AddRow(3, 1, 0, 2))
		mock.ExpectCommit()

		err = New(db).WithTx(context.Background(), func(tx seminar.TxRepo) error {
			c, err := tx.AttendanceForUpdate(context.Background(), "evt_1")
			assert.NoError(t, err)
			assert.Equal(t, domain.AttendanceCounts{RegularSeats: 3, QueueSeats: 1, PaidSeats: 2}, c)
			return nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// Bootstrap must insert with DO NOTHING and then re-read under lock.
	// A concurrent first admission that committed in between would otherwise
	// have its counts overwritten back to zero, overselling the event.
	t.Run("missing_row_bootstraps_then_rereads_committed_counts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM event_attendance (.+) FOR UPDATE").
			WithArgs("evt_new").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO event_attendance (.+) ON CONFLICT \\(event_id\\) DO NOTHING").
			WithArgs("evt_new", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		// the re-read sees the row the concurrent winner committed
		mock.ExpectQuery("SELECT (.+) FROM event_attendance (.+) FOR UPDATE").
			WithArgs("evt_new").
			WillReturnRows(sqlmock.NewRows(attendanceColumnNames).AddRow(1, 0, 0, 0))
		mock.ExpectCommit()

		err = New(db).WithTx(context.Background(), func(tx seminar.TxRepo) error {
			c, err := tx.AttendanceForUpdate(context.Background(), "evt_new")
			assert.NoError(t, err)
			assert.Equal(t, domain.AttendanceCounts{RegularSeats: 1}, c)
			return nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
