package booking

import (
    "context"
    "database/sql"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/property-booking/internal/repository"
)

// newTestEngine wires an Engine around a sqlmock database so the tests
// can assert on the exact statements and transaction boundaries.
func newTestEngine(t *testing.T) (*Engine, sqlmock.Sqlmock, *sql.DB) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    e := NewEngine(db,
        repository.NewRoomRepo(db),
        repository.NewBookingRepo(db),
        repository.NewPaymentRepo(db),
        repository.NewPropertyRepo(db),
    )
    return e, mock, db
}

const roomCols = `SELECT room_id, property_id, room_type, capacity, price_per_night, availability_status FROM rooms WHERE room_id = \? FOR UPDATE`

func availableRoom(price int64) *sqlmock.Rows {
    return sqlmock.NewRows([]string{"room_id", "property_id", "room_type", "capacity", "price_per_night", "availability_status"}).
        AddRow(5, 2, "Deluxe", 2, price, true)
}

func TestParseStayDates(t *testing.T) {
    tests := []struct {
        name     string
        checkIn  string
        checkOut string
        nights   int64
        wantErr  bool
    }{
        {name: "three nights", checkIn: "2025-01-01", checkOut: "2025-01-04", nights: 3},
        {name: "one night", checkIn: "2025-06-30", checkOut: "2025-07-01", nights: 1},
        {name: "same day", checkIn: "2025-01-01", checkOut: "2025-01-01", wantErr: true},
        {name: "reversed", checkIn: "2025-01-04", checkOut: "2025-01-01", wantErr: true},
        {name: "bad check-in", checkIn: "01/01/2025", checkOut: "2025-01-04", wantErr: true},
        {name: "bad check-out", checkIn: "2025-01-01", checkOut: "not-a-date", wantErr: true},
        {name: "empty", checkIn: "", checkOut: "", wantErr: true},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            in, out, nights, err := ParseStayDates(tt.checkIn, tt.checkOut)
            if tt.wantErr {
                assert.ErrorIs(t, err, ErrInvalidDateRange)
                return
            }
            require.NoError(t, err)
            assert.Equal(t, tt.nights, nights)
            assert.True(t, out.After(in))
        })
    }
}

func TestBookRoomCommitsBookingPaymentAndAvailability(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    in := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
    out := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(roomCols).WithArgs(uint64(5)).WillReturnRows(availableRoom(100))
    mock.ExpectExec(`INSERT INTO bookings`).
        WithArgs(uint64(9), uint64(5), in, out, int64(300)).
        WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectExec(`INSERT INTO payments`).
        WithArgs(uint64(7), "credit_card", int64(300), repository.StatusCompleted).
        WillReturnResult(sqlmock.NewResult(11, 1))
    mock.ExpectExec(`UPDATE rooms SET availability_status = \? WHERE room_id = \?`).
        WithArgs(false, uint64(5)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    res, err := e.BookRoom(context.Background(), 9, 5, "2025-01-01", "2025-01-04", "credit_card")
    require.NoError(t, err)
    assert.Equal(t, uint64(7), res.BookingID)
    assert.Equal(t, uint64(5), res.RoomID)
    assert.Equal(t, int64(3), res.Nights)
    assert.Equal(t, int64(300), res.TotalPrice)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomRejectsInvalidDatesBeforeTouchingTheDatabase(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    _, err := e.BookRoom(context.Background(), 9, 5, "2025-01-04", "2025-01-01", "cash")
    assert.ErrorIs(t, err, ErrInvalidDateRange)
    // No transaction was expected and none may have started.
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomUnavailableRollsBackWithoutInserts(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    taken := sqlmock.NewRows([]string{"room_id", "property_id", "room_type", "capacity", "price_per_night", "availability_status"}).
        AddRow(5, 2, "Deluxe", 2, int64(100), false)

    mock.ExpectBegin()
    mock.ExpectQuery(roomCols).WithArgs(uint64(5)).WillReturnRows(taken)
    mock.ExpectRollback()

    _, err := e.BookRoom(context.Background(), 9, 5, "2025-01-01", "2025-01-04", "cash")
    assert.ErrorIs(t, err, ErrRoomUnavailable)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomUnknownRoom(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(roomCols).WithArgs(uint64(99)).WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    _, err := e.BookRoom(context.Background(), 9, 99, "2025-01-01", "2025-01-04", "cash")
    assert.ErrorIs(t, err, ErrRoomNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomPaymentFailureRollsBackTheBooking(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    in := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
    out := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(roomCols).WithArgs(uint64(5)).WillReturnRows(availableRoom(100))
    mock.ExpectExec(`INSERT INTO bookings`).
        WithArgs(uint64(9), uint64(5), in, out, int64(300)).
        WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectExec(`INSERT INTO payments`).WillReturnError(sql.ErrConnDone)
    mock.ExpectRollback()

    _, err := e.BookRoom(context.Background(), 9, 5, "2025-01-01", "2025-01-04", "cash")
    assert.Error(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

const bookingLock = `SELECT booking_id, user_id, room_id, check_in_date, check_out_date, total_price, created_at, updated_at FROM bookings WHERE booking_id = \? AND user_id = \? FOR UPDATE`

func ownedBooking(bookingID, userID, roomID uint64) *sqlmock.Rows {
    now := time.Now().UTC()
    return sqlmock.NewRows([]string{"booking_id", "user_id", "room_id", "check_in_date", "check_out_date", "total_price", "created_at", "updated_at"}).
        AddRow(bookingID, userID, roomID, now, now.AddDate(0, 0, 3), int64(300), now, now)
}

func TestCancelBookingDeletesPaymentAndRestoresAvailability(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(bookingLock).WithArgs(uint64(7), uint64(9)).WillReturnRows(ownedBooking(7, 9, 5))
    mock.ExpectExec(`DELETE FROM payments WHERE booking_id = \?`).
        WithArgs(uint64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`UPDATE rooms SET availability_status = \? WHERE room_id = \?`).
        WithArgs(true, uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`DELETE FROM bookings WHERE booking_id = \?`).
        WithArgs(uint64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    roomID, err := e.CancelBooking(context.Background(), 9, 7)
    require.NoError(t, err)
    assert.Equal(t, uint64(5), roomID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingOfAnotherGuestMutatesNothing(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    // The ownership-scoped read matches no row for a foreign guest, so
    // the transaction rolls back before any delete runs.
    mock.ExpectBegin()
    mock.ExpectQuery(bookingLock).WithArgs(uint64(7), uint64(42)).WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    _, err := e.CancelBooking(context.Background(), 42, 7)
    assert.ErrorIs(t, err, ErrBookingNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingRoomUpdateFailureRollsBackEverything(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(bookingLock).WithArgs(uint64(7), uint64(9)).WillReturnRows(ownedBooking(7, 9, 5))
    mock.ExpectExec(`DELETE FROM payments WHERE booking_id = \?`).
        WithArgs(uint64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`UPDATE rooms SET availability_status = \? WHERE room_id = \?`).
        WillReturnError(sql.ErrConnDone)
    mock.ExpectRollback()

    _, err := e.CancelBooking(context.Background(), 9, 7)
    assert.Error(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileFreesExpiredRoomsAndIsIdempotent(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    mock.ExpectExec(`UPDATE rooms r JOIN`).WillReturnResult(sqlmock.NewResult(0, 2))
    freed, err := e.Reconcile(context.Background())
    require.NoError(t, err)
    assert.Equal(t, int64(2), freed)

    // A second pass with no new expirations matches zero rows.
    mock.ExpectExec(`UPDATE rooms r JOIN`).WillReturnResult(sqlmock.NewResult(0, 0))
    freed, err = e.Reconcile(context.Background())
    require.NoError(t, err)
    assert.Equal(t, int64(0), freed)

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomStatusScopedToOwner(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    mock.ExpectQuery(`SELECT property_id, owner_id, .+ FROM properties WHERE property_id = \? AND owner_id = \?`).
        WithArgs(uint64(2), uint64(3)).
        WillReturnError(sql.ErrNoRows)

    _, err := e.RoomStatus(context.Background(), 2, 3)
    assert.ErrorIs(t, err, ErrPropertyNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomStatusMarksRoomsWithActiveBookings(t *testing.T) {
    e, mock, db := newTestEngine(t)
    defer db.Close()

    now := time.Now().UTC()
    propRows := sqlmock.NewRows([]string{
        "property_id", "owner_id", "address", "city", "state", "country",
        "description", "image_url", "image_description", "created_at", "updated_at",
    }).AddRow(2, 3, "1 Shore Rd", "Brighton", "", "UK", "", "", "", now, now)

    mock.ExpectQuery(`SELECT property_id, owner_id, .+ FROM properties WHERE property_id = \? AND owner_id = \?`).
        WithArgs(uint64(2), uint64(3)).
        WillReturnRows(propRows)

    statusRows := sqlmock.NewRows([]string{"room_id", "room_type", "capacity", "price_per_night", "availability_status", "is_booked"}).
        AddRow(5, "Deluxe", 2, int64(10000), false, true).
        AddRow(6, "Single", 1, int64(4500), true, false)
    mock.ExpectQuery(`SELECT r.room_id, r.room_type, .+ FROM rooms r WHERE r.property_id = \?`).
        WithArgs(uint64(2)).
        WillReturnRows(statusRows)

    status, err := e.RoomStatus(context.Background(), 2, 3)
    require.NoError(t, err)
    require.Len(t, status.Rooms, 2)
    assert.True(t, status.Rooms[0].IsBooked)
    assert.False(t, status.Rooms[0].Available)
    assert.False(t, status.Rooms[1].IsBooked)
    assert.True(t, status.Rooms[1].Available)
    assert.NoError(t, mock.ExpectationsWereMet())
}
