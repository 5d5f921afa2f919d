// Package booking implements the availability core: deciding whether a
// room can be booked, computing the price, and mutating room, booking
// and payment state atomically.  Handlers and the reconciliation job are
// thin callers; every multi-statement mutation in this package runs as a
// single database transaction so partial writes are never observable.
package booking

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

// Sentinel errors returned by the engine.  Handlers map these onto HTTP
// statuses; anything else is a persistence failure and becomes a 500.
var (
    // ErrInvalidDateRange means check-out is not strictly after check-in,
    // or a date failed to parse as YYYY-MM-DD.
    ErrInvalidDateRange = errors.New("invalid date range")
    // ErrRoomNotFound means the requested room does not exist.
    ErrRoomNotFound = errors.New("room not found")
    // ErrRoomUnavailable means the room exists but is already booked.
    ErrRoomUnavailable = errors.New("room unavailable")
    // ErrBookingNotFound covers both a missing booking and a booking owned
    // by a different guest; the two are surfaced identically so callers
    // cannot probe other users' booking IDs.
    ErrBookingNotFound = errors.New("booking not found")
    // ErrPropertyNotFound means the property does not exist or is not
    // owned by the requesting admin.
    ErrPropertyNotFound = errors.New("property not found")
)

const dateLayout = "2006-01-02"

// Engine bundles the repositories needed to book, cancel and reconcile.
// All methods are safe for concurrent use; the database row lock on the
// room is the only coordination between overlapping bookings.
type Engine struct {
    db       *sql.DB
    Rooms    *repository.RoomRepo
    Bookings *repository.BookingRepo
    Payments *repository.PaymentRepo
    Props    *repository.PropertyRepo
}

// NewEngine constructs an Engine.  All dependencies must be non-nil.
func NewEngine(db *sql.DB, rooms *repository.RoomRepo, bookings *repository.BookingRepo, payments *repository.PaymentRepo, props *repository.PropertyRepo) *Engine {
    if db == nil || rooms == nil || bookings == nil || payments == nil || props == nil {
        panic("nil dependency passed to NewEngine")
    }
    return &Engine{db: db, Rooms: rooms, Bookings: bookings, Payments: payments, Props: props}
}

// BookingResult reports a committed booking back to the caller.
type BookingResult struct {
    BookingID  uint64 `json:"booking_id"`
    RoomID     uint64 `json:"room_id"`
    RoomType   string `json:"room_type"`
    Nights     int64  `json:"nights"`
    TotalPrice int64  `json:"total_price"`
}

// ParseStayDates validates and parses a check-in/check-out pair.  It
// returns ErrInvalidDateRange unless both parse as calendar dates and
// check-out falls strictly after check-in.
func ParseStayDates(checkIn, checkOut string) (time.Time, time.Time, int64, error) {
    in, err := time.Parse(dateLayout, checkIn)
    if err != nil {
        return time.Time{}, time.Time{}, 0, ErrInvalidDateRange
    }
    out, err := time.Parse(dateLayout, checkOut)
    if err != nil {
        return time.Time{}, time.Time{}, 0, ErrInvalidDateRange
    }
    nights := int64(out.Sub(in) / (24 * time.Hour))
    if nights <= 0 {
        return time.Time{}, time.Time{}, 0, ErrInvalidDateRange
    }
    return in, out, nights, nil
}

// BookRoom reserves a room for a guest.  Inside one transaction it locks
// the room row, checks availability, inserts the booking and its
// completed payment, and marks the room unavailable.  The FOR UPDATE
// read is what makes two concurrent attempts on the same room safe:
// the second transaction blocks on the lock and then observes
// availability_status = 0, so exactly one booking wins.
func (e *Engine) BookRoom(ctx context.Context, guestID, roomID uint64, checkIn, checkOut, paymentMethod string) (*BookingResult, error) {
    in, out, nights, err := ParseStayDates(checkIn, checkOut)
    if err != nil {
        return nil, err
    }

    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    room, err := e.Rooms.GetForUpdateTx(ctx, tx, roomID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    if !room.Available {
        return nil, ErrRoomUnavailable
    }

    total := nights * room.PricePerNight

    rec := &repository.BookingRecord{
        UserID:       guestID,
        RoomID:       roomID,
        CheckInDate:  in,
        CheckOutDate: out,
        TotalPrice:   total,
    }
    if err := e.Bookings.CreateTx(ctx, tx, rec); err != nil {
        return nil, err
    }
    pay := &repository.PaymentRecord{
        BookingID:     rec.ID,
        PaymentMethod: paymentMethod,
        Amount:        total,
    }
    if err := e.Payments.CreateTx(ctx, tx, pay); err != nil {
        return nil, err
    }
    if err := e.Rooms.SetAvailabilityTx(ctx, tx, roomID, false); err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return &BookingResult{BookingID: rec.ID, RoomID: roomID, RoomType: room.RoomType, Nights: nights, TotalPrice: total}, nil
}

// CancelBooking removes a guest's booking and returns the id of the room
// it freed.  Inside one transaction it loads the booking scoped to the
// guest, deletes the payment, restores the room's availability and
// deletes the booking.  All three or none.
func (e *Engine) CancelBooking(ctx context.Context, guestID, bookingID uint64) (uint64, error) {
    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    rec, err := e.Bookings.GetForUserTx(ctx, tx, bookingID, guestID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrBookingNotFound
        }
        return 0, err
    }
    if err := e.Payments.DeleteByBookingTx(ctx, tx, rec.ID); err != nil {
        return 0, err
    }
    if err := e.Rooms.SetAvailabilityTx(ctx, tx, rec.RoomID, true); err != nil {
        return 0, err
    }
    if err := e.Bookings.DeleteTx(ctx, tx, rec.ID); err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return rec.RoomID, nil
}

// RoomStatusRow is a room plus its derived booked flag for the owner's
// room-status view.
type RoomStatusRow struct {
    RoomID        uint64 `json:"room_id"`
    RoomType      string `json:"room_type"`
    Capacity      uint32 `json:"capacity"`
    PricePerNight int64  `json:"price_per_night"`
    Available     bool   `json:"availability_status"`
    IsBooked      bool   `json:"is_booked"`
}

// PropertyStatus is the owner's room-status projection: the property and
// one row per room.
type PropertyStatus struct {
    Property model.Property  `json:"property"`
    Rooms    []RoomStatusRow `json:"rooms"`
}

// RoomStatus returns the property (scoped to its owner) and each room
// with an is_booked flag.  A room is booked iff any booking for it has a
// check-out date on or after today.  The flag is computed with EXISTS
// rather than a join so a room with several historical bookings still
// yields exactly one row.
func (e *Engine) RoomStatus(ctx context.Context, propertyID, ownerID uint64) (*PropertyStatus, error) {
    prop, err := e.Props.GetByIDForOwner(ctx, propertyID, ownerID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrPropertyNotFound
        }
        return nil, err
    }

    const q = `SELECT r.room_id, r.room_type, r.capacity, r.price_per_night, r.availability_status,
                      EXISTS(SELECT 1 FROM bookings b WHERE b.room_id = r.room_id AND b.check_out_date >= CURDATE()) AS is_booked
               FROM rooms r
               WHERE r.property_id = ?
               ORDER BY r.room_id`
    rows, err := e.db.QueryContext(ctx, q, propertyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    status := &PropertyStatus{Property: prop, Rooms: make([]RoomStatusRow, 0)}
    for rows.Next() {
        var rs RoomStatusRow
        if err := rows.Scan(&rs.RoomID, &rs.RoomType, &rs.Capacity, &rs.PricePerNight, &rs.Available, &rs.IsBooked); err != nil {
            return nil, err
        }
        status.Rooms = append(status.Rooms, rs)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return status, nil
}

// Reconcile restores availability for rooms whose bookings have all
// expired.  A room is freed only when it has at least one expired
// booking AND no booking that is still active, so overlapping bookings
// can never flip a room available early.  The single UPDATE commits or
// rolls back as a unit and is idempotent: a second run with no new
// expirations matches zero rows.  Bookings and payments are never
// deleted here; history stays queryable.
func (e *Engine) Reconcile(ctx context.Context) (int64, error) {
    const q = `UPDATE rooms r
               JOIN (SELECT DISTINCT room_id FROM bookings WHERE check_out_date < CURDATE()) expired
                 ON expired.room_id = r.room_id
               LEFT JOIN bookings active
                 ON active.room_id = r.room_id AND active.check_out_date >= CURDATE()
               SET r.availability_status = 1
               WHERE r.availability_status = 0 AND active.booking_id IS NULL`
    res, err := e.db.ExecContext(ctx, q)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}
