package handler

import (
    "database/sql"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/property-booking/internal/booking"
    "github.com/iliyamo/property-booking/internal/repository"
)

// newGuestHandler builds a GuestHandler over a sqlmock database so the
// tests can drive the engine's outcomes through expected statements.
func newGuestHandler(t *testing.T) (*GuestHandler, sqlmock.Sqlmock, *sql.DB) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    rooms := repository.NewRoomRepo(db)
    bookings := repository.NewBookingRepo(db)
    engine := booking.NewEngine(db, rooms, bookings,
        repository.NewPaymentRepo(db), repository.NewPropertyRepo(db))
    return NewGuestHandler(engine, bookings), mock, db
}

func bookContext(t *testing.T, body string, propertyID, roomID string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id", "room_id")
    c.SetParamValues(propertyID, roomID)
    c.Set("user_id", uint64(9))
    return c, rec
}

func TestBookRoomRejectsBadPathParams(t *testing.T) {
    h, mock, db := newGuestHandler(t)
    defer db.Close()

    c, rec := bookContext(t, `{}`, "abc", "5")
    require.NoError(t, h.BookRoom(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomRequiresPaymentMethod(t *testing.T) {
    h, mock, db := newGuestHandler(t)
    defer db.Close()

    c, rec := bookContext(t, `{"check_in_date":"2025-01-01","check_out_date":"2025-01-04"}`, "2", "5")
    require.NoError(t, h.BookRoom(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomMapsInvalidDatesTo400(t *testing.T) {
    h, mock, db := newGuestHandler(t)
    defer db.Close()

    c, rec := bookContext(t,
        `{"check_in_date":"2025-01-04","check_out_date":"2025-01-01","payment_method":"cash"}`, "2", "5")
    require.NoError(t, h.BookRoom(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomMapsUnavailableTo409(t *testing.T) {
    h, mock, db := newGuestHandler(t)
    defer db.Close()

    taken := sqlmock.NewRows([]string{"room_id", "property_id", "room_type", "capacity", "price_per_night", "availability_status"}).
        AddRow(5, 2, "Deluxe", 2, int64(100), false)
    mock.ExpectBegin()
    mock.ExpectQuery(`FROM rooms WHERE room_id = \? FOR UPDATE`).WillReturnRows(taken)
    mock.ExpectRollback()

    c, rec := bookContext(t,
        `{"check_in_date":"2025-01-01","check_out_date":"2025-01-04","payment_method":"cash"}`, "2", "5")
    require.NoError(t, h.BookRoom(c))
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), `"property_id":2`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomMapsMissingRoomTo404(t *testing.T) {
    h, mock, db := newGuestHandler(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(`FROM rooms WHERE room_id = \? FOR UPDATE`).WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    c, rec := bookContext(t,
        `{"check_in_date":"2025-01-01","check_out_date":"2025-01-04","payment_method":"cash"}`, "2", "99")
    require.NoError(t, h.BookRoom(c))
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingMapsForeignBookingTo404(t *testing.T) {
    h, mock, db := newGuestHandler(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(`FROM bookings WHERE booking_id = \? AND user_id = \? FOR UPDATE`).
        WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    e := echo.New()
    req := httptest.NewRequest(http.MethodDelete, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("7")
    c.Set("user_id", uint64(9))

    require.NoError(t, h.CancelBooking(c))
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookingsReturnsEmptyArray(t *testing.T) {
    h, mock, db := newGuestHandler(t)
    defer db.Close()

    mock.ExpectQuery(`FROM bookings b JOIN rooms r`).
        WithArgs(uint64(9)).
        WillReturnRows(sqlmock.NewRows([]string{
            "booking_id", "room_id", "room_type", "address", "city",
            "check_in_date", "check_out_date", "total_price", "active",
        }))

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(9))

    require.NoError(t, h.ListBookings(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"items":[]`)
    assert.NoError(t, mock.ExpectationsWereMet())
}
