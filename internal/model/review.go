package model

import "time"

// Review is a guest's rating and comment for a room.
type Review struct {
    ID        uint64    // reviews.review_id
    RoomID    uint64    // reviews.room_id
    UserID    uint64    // reviews.user_id
    Rating    uint8     // reviews.rating (1..5)
    Comment   string    // reviews.comment
    CreatedAt time.Time // reviews.created_at
    UpdatedAt time.Time // reviews.updated_at
}
