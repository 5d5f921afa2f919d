package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/property-booking/internal/model"
)

// AmenityRepo provides CRUD operations for property amenities.  Amenity
// mutations verify that the enclosing property belongs to the calling
// owner before touching the row.
type AmenityRepo struct {
    db *sql.DB
}

// NewAmenityRepo returns a new AmenityRepo bound to the given database.
func NewAmenityRepo(db *sql.DB) *AmenityRepo { return &AmenityRepo{db: db} }

// ownsProperty reports whether ownerID owns propertyID.  sql.ErrNoRows
// is returned when the property does not exist.
func (r *AmenityRepo) ownsProperty(ctx context.Context, propertyID, ownerID uint64) error {
    var actual uint64
    if err := r.db.QueryRowContext(ctx,
        `SELECT owner_id FROM properties WHERE property_id = ?`, propertyID).Scan(&actual); err != nil {
        return err
    }
    if actual != ownerID {
        return ErrForbidden
    }
    return nil
}

// Create inserts an amenity for a property after an ownership check.
func (r *AmenityRepo) Create(ctx context.Context, ownerID uint64, a *model.Amenity) (uint64, error) {
    if err := r.ownsProperty(ctx, a.PropertyID, ownerID); err != nil {
        return 0, err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO amenities (property_id, name, description) VALUES (?, ?, ?)`,
        a.PropertyID, a.Name, a.Description)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    a.ID = uint64(id)
    return a.ID, nil
}

// Update rewrites an amenity's name and description.  The join against
// properties keeps the statement ownership-scoped in one round trip.
func (r *AmenityRepo) Update(ctx context.Context, ownerID uint64, a *model.Amenity) error {
    const q = `UPDATE amenities am
               JOIN properties p ON p.property_id = am.property_id
               SET am.name = ?, am.description = ?
               WHERE am.amenity_id = ? AND p.owner_id = ?`
    res, err := r.db.ExecContext(ctx, q, a.Name, a.Description, a.ID, ownerID)
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

// Delete removes an amenity, ownership-scoped like Update.
func (r *AmenityRepo) Delete(ctx context.Context, ownerID, amenityID uint64) error {
    const q = `DELETE am FROM amenities am
               JOIN properties p ON p.property_id = am.property_id
               WHERE am.amenity_id = ? AND p.owner_id = ?`
    res, err := r.db.ExecContext(ctx, q, amenityID, ownerID)
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

// ListByProperty returns all amenities of a property.
func (r *AmenityRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Amenity, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT amenity_id, property_id, name, description FROM amenities WHERE property_id = ? ORDER BY amenity_id`,
        propertyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Amenity, 0)
    for rows.Next() {
        var a model.Amenity
        if err := rows.Scan(&a.ID, &a.PropertyID, &a.Name, &a.Description); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
