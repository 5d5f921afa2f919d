package booking

import (
    "database/sql"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
)

func TestNewReconcilerDefaultsInterval(t *testing.T) {
    e, _, db := newTestEngine(t)
    defer db.Close()

    r := NewReconciler(e, 0)
    assert.Equal(t, time.Hour, r.interval)

    r = NewReconciler(e, 15*time.Minute)
    assert.Equal(t, 15*time.Minute, r.interval)
}

func TestRunOnceSwallowsFailures(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    mock.ExpectExec(`UPDATE rooms r JOIN`).WillReturnError(sql.ErrConnDone)

    // A failed sweep must not panic or propagate; the next tick retries.
    r := NewReconciler(e, time.Minute)
    r.RunOnce()
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunOnceReportsFreedRooms(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    mock.ExpectExec(`UPDATE rooms r JOIN`).WillReturnResult(sqlmock.NewResult(0, 3))

    r := NewReconciler(e, time.Minute)
    r.RunOnce()
    assert.NoError(t, mock.ExpectationsWereMet())
}
