package repository

import (
    "context"
    "database/sql"
    "time"
)

// ReviewRepo persists room reviews.
type ReviewRepo struct {
    db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and returns its ID.
func (r *ReviewRepo) Create(ctx context.Context, roomID, userID uint64, rating uint8, comment string) (uint64, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO reviews (room_id, user_id, rating, comment, created_at, updated_at) VALUES (?, ?, ?, ?, NOW(), NOW())`,
        roomID, userID, rating, comment)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// ReviewDetail is a review joined with the reviewer's display name.
type ReviewDetail struct {
    Rating    uint8  `json:"rating"`
    Comment   string `json:"comment"`
    UserName  string `json:"user_name"`
    CreatedAt string `json:"created_at"`
}

// ListByRoom returns reviews for a room, newest first.
func (r *ReviewRepo) ListByRoom(ctx context.Context, roomID uint64) ([]ReviewDetail, error) {
    const q = `SELECT rv.rating, rv.comment, u.name, rv.created_at
               FROM reviews rv
               JOIN users u ON u.user_id = rv.user_id
               WHERE rv.room_id = ?
               ORDER BY rv.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, roomID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ReviewDetail, 0)
    for rows.Next() {
        var d ReviewDetail
        var createdAt time.Time
        if err := rows.Scan(&d.Rating, &d.Comment, &d.UserName, &createdAt); err != nil {
            return nil, err
        }
        d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
