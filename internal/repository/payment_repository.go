package repository

import (
    "context"
    "database/sql"
    "time"
)

// StatusCompleted is the only payment status this application writes.
// Payment here is a local ledger record, not a gateway round trip.
const StatusCompleted = "completed"

// PaymentRepo persists the 1:1 payment ledger rows for bookings.  Both
// mutations run inside the booking engine's transactions, so only Tx
// variants exist.
type PaymentRepo struct {
    db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// PaymentRecord mirrors the payments table.
type PaymentRecord struct {
    ID            uint64
    BookingID     uint64
    PaymentMethod string
    Amount        int64
    PaymentStatus string
    PaymentDate   time.Time
}

// CreateTx inserts a completed payment referencing a booking inside tx.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *PaymentRecord) error {
    const q = `INSERT INTO payments (booking_id, payment_method, amount, payment_status, payment_date)
               VALUES (?, ?, ?, ?, NOW())`
    result, err := tx.ExecContext(ctx, q, p.BookingID, p.PaymentMethod, p.Amount, StatusCompleted)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    p.PaymentStatus = StatusCompleted
    return nil
}

// DeleteByBookingTx removes the payment of a booking inside tx.
func (r *PaymentRepo) DeleteByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
    _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE booking_id = ?`, bookingID)
    return err
}

// GetByBooking returns the payment for a booking, if any.
func (r *PaymentRepo) GetByBooking(ctx context.Context, bookingID uint64) (PaymentRecord, error) {
    const q = `SELECT payment_id, booking_id, payment_method, amount, payment_status, payment_date
               FROM payments WHERE booking_id = ?`
    var p PaymentRecord
    err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
        &p.ID, &p.BookingID, &p.PaymentMethod, &p.Amount, &p.PaymentStatus, &p.PaymentDate)
    return p, err
}
