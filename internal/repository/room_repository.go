package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/property-booking/internal/model"
)

// RoomRepo provides CRUD and availability operations for rooms.  The
// Tx variants participate in a caller-managed transaction; the booking
// engine uses them to keep the availability read and write inside one
// atomic unit.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// Create inserts a room under a property after verifying ownership.
func (r *RoomRepo) Create(ctx context.Context, ownerID uint64, rm *model.Room) (uint64, error) {
    var actual uint64
    if err := r.db.QueryRowContext(ctx,
        `SELECT owner_id FROM properties WHERE property_id = ?`, rm.PropertyID).Scan(&actual); err != nil {
        return 0, err
    }
    if actual != ownerID {
        return 0, ErrForbidden
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO rooms (property_id, room_type, capacity, price_per_night, availability_status) VALUES (?, ?, ?, ?, ?)`,
        rm.PropertyID, rm.RoomType, rm.Capacity, rm.PricePerNight, rm.Available)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    rm.ID = uint64(id)
    return rm.ID, nil
}

// Update rewrites a room's editable columns, ownership-scoped via join.
func (r *RoomRepo) Update(ctx context.Context, ownerID uint64, rm *model.Room) error {
    const q = `UPDATE rooms rm
               JOIN properties p ON p.property_id = rm.property_id
               SET rm.room_type = ?, rm.capacity = ?, rm.price_per_night = ?, rm.availability_status = ?
               WHERE rm.room_id = ? AND p.owner_id = ?`
    res, err := r.db.ExecContext(ctx, q, rm.RoomType, rm.Capacity, rm.PricePerNight, rm.Available, rm.ID, ownerID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// Delete removes a room, ownership-scoped.  A room with bookings keeps
// its history: the foreign key blocks the delete and we report conflict.
func (r *RoomRepo) Delete(ctx context.Context, ownerID, roomID uint64) error {
    const q = `DELETE rm FROM rooms rm
               JOIN properties p ON p.property_id = rm.property_id
               WHERE rm.room_id = ? AND p.owner_id = ?`
    res, err := r.db.ExecContext(ctx, q, roomID, ownerID)
    if err != nil {
        return ErrConflict
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// GetByID fetches a room without locking.  Read-only paths use this.
func (r *RoomRepo) GetByID(ctx context.Context, roomID uint64) (model.Room, error) {
    var rm model.Room
    err := r.db.QueryRowContext(ctx,
        `SELECT room_id, property_id, room_type, capacity, price_per_night, availability_status FROM rooms WHERE room_id = ?`,
        roomID).Scan(&rm.ID, &rm.PropertyID, &rm.RoomType, &rm.Capacity, &rm.PricePerNight, &rm.Available)
    return rm, err
}

// GetForUpdateTx fetches a room inside tx with a row lock.  Concurrent
// booking attempts against the same room serialize on this lock, so the
// availability value read here cannot go stale before the commit.
func (r *RoomRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, roomID uint64) (model.Room, error) {
    var rm model.Room
    err := tx.QueryRowContext(ctx,
        `SELECT room_id, property_id, room_type, capacity, price_per_night, availability_status FROM rooms WHERE room_id = ? FOR UPDATE`,
        roomID).Scan(&rm.ID, &rm.PropertyID, &rm.RoomType, &rm.Capacity, &rm.PricePerNight, &rm.Available)
    return rm, err
}

// SetAvailabilityTx flips availability_status inside tx.
func (r *RoomRepo) SetAvailabilityTx(ctx context.Context, tx *sql.Tx, roomID uint64, available bool) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE rooms SET availability_status = ? WHERE room_id = ?`, available, roomID)
    return err
}

// ListByProperty returns all rooms of a property.
func (r *RoomRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Room, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT room_id, property_id, room_type, capacity, price_per_night, availability_status FROM rooms WHERE property_id = ? ORDER BY room_id`,
        propertyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Room, 0)
    for rows.Next() {
        var rm model.Room
        if err := rows.Scan(&rm.ID, &rm.PropertyID, &rm.RoomType, &rm.Capacity, &rm.PricePerNight, &rm.Available); err != nil {
            return nil, err
        }
        out = append(out, rm)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
