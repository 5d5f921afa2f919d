package repository

import (
    "context"
    "database/sql"
    "time"
)

// BookingRepo provides persistence for bookings.  Bookings are created
// and deleted only through the booking engine's transactions; the repo
// therefore exposes Tx variants for every mutation and plain reads for
// listings.  All dates are calendar dates stored in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingRecord mirrors the schema of the bookings table.  It is used
// internally when constructing or scanning rows; business logic should
// use the model.Booking type instead.
type BookingRecord struct {
    ID           uint64
    UserID       uint64
    RoomID       uint64
    CheckInDate  time.Time
    CheckOutDate time.Time
    TotalPrice   int64
    CreatedAt    time.Time
    UpdatedAt    time.Time
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID on the provided record.
// The caller must commit or rollback the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
    const q = `INSERT INTO bookings (user_id, room_id, check_in_date, check_out_date, total_price, created_at, updated_at)
               VALUES (?, ?, ?, ?, ?, NOW(), NOW())`
    result, err := tx.ExecContext(ctx, q, b.UserID, b.RoomID, b.CheckInDate, b.CheckOutDate, b.TotalPrice)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// GetForUserTx returns a booking scoped to the requesting guest, locked
// for the duration of tx.  sql.ErrNoRows covers both "does not exist"
// and "owned by someone else" so callers cannot probe other users'
// booking IDs.
func (r *BookingRepo) GetForUserTx(ctx context.Context, tx *sql.Tx, bookingID, userID uint64) (BookingRecord, error) {
    const q = `SELECT booking_id, user_id, room_id, check_in_date, check_out_date, total_price, created_at, updated_at
               FROM bookings WHERE booking_id = ? AND user_id = ? FOR UPDATE`
    var b BookingRecord
    err := tx.QueryRowContext(ctx, q, bookingID, userID).Scan(
        &b.ID, &b.UserID, &b.RoomID, &b.CheckInDate, &b.CheckOutDate, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
    )
    return b, err
}

// DeleteTx removes a booking row inside tx.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
    _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = ?`, bookingID)
    return err
}

// BookingDetail is a booking joined with its room and property for the
// guest's booking list.
type BookingDetail struct {
    ID           uint64 `json:"booking_id"`
    RoomID       uint64 `json:"room_id"`
    RoomType     string `json:"room_type"`
    Address      string `json:"address"`
    City         string `json:"city"`
    CheckInDate  string `json:"check_in_date"`
    CheckOutDate string `json:"check_out_date"`
    TotalPrice   int64  `json:"total_price"`
    Active       bool   `json:"active"`
}

// ListByUser returns all bookings for the given guest with room and
// property details, newest first.  The Active flag is derived in SQL so
// it uses the database clock, the same clock every other availability
// decision uses.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    const q = `SELECT b.booking_id, b.room_id, r.room_type, p.address, p.city,
                      b.check_in_date, b.check_out_date, b.total_price,
                      (b.check_out_date >= CURDATE()) AS active
               FROM bookings b
               JOIN rooms r ON r.room_id = b.room_id
               JOIN properties p ON p.property_id = r.property_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]BookingDetail, 0)
    for rows.Next() {
        var d BookingDetail
        var in, out time.Time
        if err := rows.Scan(&d.ID, &d.RoomID, &d.RoomType, &d.Address, &d.City, &in, &out, &d.TotalPrice, &d.Active); err != nil {
            return nil, err
        }
        d.CheckInDate = in.Format("2006-01-02")
        d.CheckOutDate = out.Format("2006-01-02")
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}
