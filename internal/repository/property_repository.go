package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/property-booking/internal/model"
)

// PropertyRepo provides CRUD operations for rental properties.  Every
// mutating method is scoped to the owning admin so that one owner can
// never touch another owner's listing; a zero rows-affected result on
// an ownership-scoped statement surfaces as sql.ErrNoRows.
type PropertyRepo struct {
    db *sql.DB
}

// NewPropertyRepo returns a new PropertyRepo bound to the given database.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span properties, rooms and amenities.
func (r *PropertyRepo) DB() *sql.DB { return r.db }

const propertyCols = `property_id, owner_id, address, city, state, country, description, image_url, image_description, created_at, updated_at`

func scanProperty(row interface{ Scan(...interface{}) error }) (model.Property, error) {
    var p model.Property
    err := row.Scan(&p.ID, &p.OwnerID, &p.Address, &p.City, &p.State, &p.Country,
        &p.Description, &p.ImageURL, &p.ImageDescription, &p.CreatedAt, &p.UpdatedAt)
    return p, err
}

// Create inserts a property owned by ownerID and returns the new ID.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) (uint64, error) {
    const q = `INSERT INTO properties (owner_id, address, city, state, country, description, image_url, image_description)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, p.OwnerID, p.Address, p.City, p.State, p.Country,
        p.Description, p.ImageURL, p.ImageDescription)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    p.ID = uint64(id)
    return p.ID, nil
}

// Update rewrites the editable columns of a property, scoped to its owner.
// sql.ErrNoRows is returned when the property does not exist or belongs
// to someone else; the two cases are deliberately indistinguishable.
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
    const q = `UPDATE properties
               SET address = ?, city = ?, state = ?, country = ?, description = ?, image_url = ?, image_description = ?
               WHERE property_id = ? AND owner_id = ?`
    res, err := r.db.ExecContext(ctx, q, p.Address, p.City, p.State, p.Country,
        p.Description, p.ImageURL, p.ImageDescription, p.ID, p.OwnerID)
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

// DeleteCascade removes a property together with its rooms and amenities
// in a single transaction.  Rooms with bookings still referencing them
// make the room delete fail on the foreign key, which rolls the whole
// delete back and surfaces ErrConflict.
func (r *PropertyRepo) DeleteCascade(ctx context.Context, propertyID, ownerID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    // Ownership gate first so we never delete children of someone else's listing.
    var actualOwner uint64
    if err := tx.QueryRowContext(ctx,
        `SELECT owner_id FROM properties WHERE property_id = ?`, propertyID).Scan(&actualOwner); err != nil {
        return err // sql.ErrNoRows when the property does not exist
    }
    if actualOwner != ownerID {
        return ErrForbidden
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE property_id = ?`, propertyID); err != nil {
        return ErrConflict
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM amenities WHERE property_id = ?`, propertyID); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE property_id = ?`, propertyID); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetByID returns a property regardless of owner.  Used by guest-facing
// browse endpoints.
func (r *PropertyRepo) GetByID(ctx context.Context, propertyID uint64) (model.Property, error) {
    const q = `SELECT ` + propertyCols + ` FROM properties WHERE property_id = ?`
    return scanProperty(r.db.QueryRowContext(ctx, q, propertyID))
}

// GetByIDForOwner returns a property only when owned by ownerID.
func (r *PropertyRepo) GetByIDForOwner(ctx context.Context, propertyID, ownerID uint64) (model.Property, error) {
    const q = `SELECT ` + propertyCols + ` FROM properties WHERE property_id = ? AND owner_id = ?`
    return scanProperty(r.db.QueryRowContext(ctx, q, propertyID, ownerID))
}

// ListByOwner returns every property managed by ownerID, newest first.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Property, error) {
    const q = `SELECT ` + propertyCols + ` FROM properties WHERE owner_id = ? ORDER BY created_at DESC`
    return r.list(ctx, q, ownerID)
}

// ListAll returns every property in the system for the guest browse page.
func (r *PropertyRepo) ListAll(ctx context.Context) ([]model.Property, error) {
    const q = `SELECT ` + propertyCols + ` FROM properties ORDER BY created_at DESC`
    return r.list(ctx, q)
}

func (r *PropertyRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Property, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Property, 0)
    for rows.Next() {
        p, err := scanProperty(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
