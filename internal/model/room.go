package model

// Room is a bookable unit inside a property.  Availability is a plain
// boolean gate: a room flips to unavailable the moment a booking is
// committed and back to available when the booking is cancelled or the
// reconciliation job observes its check-out date has passed.
//
// Fields:
//  ID             – primary key identifier.
//  PropertyID     – parent property.
//  RoomType       – label such as "double" or "suite".
//  Capacity       – maximum number of occupants.
//  PricePerNight  – nightly rate in cents.
//  Available      – whether the room can be booked right now.
type Room struct {
    ID            uint64 // rooms.room_id
    PropertyID    uint64 // rooms.property_id
    RoomType      string // rooms.room_type
    Capacity      uint32 // rooms.capacity
    PricePerNight int64  // rooms.price_per_night (cents)
    Available     bool   // rooms.availability_status
}
