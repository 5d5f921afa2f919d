// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking transaction commits.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID     uint64 `json:"booking_id"`
    UserID        uint64 `json:"user_id"`
    RoomID        uint64 `json:"room_id"`
    PropertyID    uint64 `json:"property_id"`
    RoomType      string `json:"room_type"`
    CheckInDate   string `json:"check_in_date"`
    CheckOutDate  string `json:"check_out_date"`
    Nights        int64  `json:"nights"`
    TotalPrice    int64  `json:"total_price"`
    PaymentMethod string `json:"payment_method"`
    ConfirmedAt   string `json:"confirmed_at"`
}

// BookingCancelledEvent is published after a cancellation commits, once
// the room is available again.
type BookingCancelledEvent struct {
    BookingID   uint64 `json:"booking_id"`
    UserID      uint64 `json:"user_id"`
    RoomID      uint64 `json:"room_id"`
    CancelledAt string `json:"cancelled_at"`
}
