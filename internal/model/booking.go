package model

import "time"

// Booking records a guest's stay in a room between two calendar dates.
// A booking has no status column: it is "active" while its check-out
// date has not yet passed, and simply ceases to exist when cancelled.
// Its payment row is created in the same transaction and removed with it.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – guest who booked.
//  RoomID       – room being occupied.
//  CheckInDate  – first night (date only, UTC).
//  CheckOutDate – departure date (date only, UTC); strictly after check-in.
//  TotalPrice   – nights × nightly rate, in cents.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Booking struct {
    ID           uint64    // bookings.booking_id
    UserID       uint64    // bookings.user_id
    RoomID       uint64    // bookings.room_id
    CheckInDate  time.Time // bookings.check_in_date
    CheckOutDate time.Time // bookings.check_out_date
    TotalPrice   int64     // bookings.total_price (cents)
    CreatedAt    time.Time // bookings.created_at
    UpdatedAt    time.Time // bookings.updated_at
}

// Payment is the 1:1 ledger record for a booking.  This application
// keeps a local ledger only; there is no gateway round trip, so the
// only status ever written is "completed".
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – the booking paid for (unique).
//  PaymentMethod – method label supplied by the guest.
//  Amount        – amount paid in cents; equals the booking total.
//  PaymentStatus – always "completed".
//  PaymentDate   – when the ledger row was written.
type Payment struct {
    ID            uint64    // payments.payment_id
    BookingID     uint64    // payments.booking_id
    PaymentMethod string    // payments.payment_method
    Amount        int64     // payments.amount (cents)
    PaymentStatus string    // payments.payment_status
    PaymentDate   time.Time // payments.payment_date
}
