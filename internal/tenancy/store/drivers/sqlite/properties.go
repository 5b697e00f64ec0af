package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/store"
)

const propertyColumns = `id, owner_id, name, address_line1, address_line2, city, county,
	postcode, property_type, bedrooms, bathrooms, description, created_at, updated_at`

type propertiesRepo struct {
	q querier
}

func (r *propertiesRepo) scanProperty(row interface{ Scan(...any) error }) (domain.Property, error) {
	var (
		p            domain.Property
		addressLine2 sql.NullString
		description  sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.AddressLine1, &addressLine2, &p.City, &p.County,
		&p.Postcode, &p.PropertyType, &p.Bedrooms, &p.Bathrooms, &description,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, mapNotFound(err)
	}
	p.AddressLine2 = mapNullString(addressLine2)
	p.Description = mapNullString(description)
	return p, nil
}

func (r *propertiesRepo) GetPropertyByID(ctx context.Context, id string) (domain.Property, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	return r.scanProperty(row)
}

func (r *propertiesRepo) collect(rows *sql.Rows) ([]domain.Property, error) {
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := r.scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *propertiesRepo) ListProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+propertyColumns+` FROM properties ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *propertiesRepo) ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *propertiesRepo) CreateProperty(ctx context.Context, p domain.Property) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO properties (id, owner_id, name, address_line1, address_line2, city,
		   county, postcode, property_type, bedrooms, bathrooms, description,
		   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, p.AddressLine1, mapStringNull(p.AddressLine2), p.City,
		p.County, p.Postcode, p.PropertyType, p.Bedrooms, p.Bathrooms,
		mapStringNull(p.Description), p.CreatedAt, p.UpdatedAt)
	return mapConstraint(err)
}

func (r *propertiesRepo) UpdateProperty(ctx context.Context, p domain.Property) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE properties SET name = ?, address_line1 = ?, address_line2 = ?, city = ?,
		   county = ?, postcode = ?, property_type = ?, bedrooms = ?, bathrooms = ?,
		   description = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.AddressLine1, mapStringNull(p.AddressLine2), p.City,
		p.County, p.Postcode, p.PropertyType, p.Bedrooms, p.Bathrooms,
		mapStringNull(p.Description), time.Now().UTC(), p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *propertiesRepo) DeleteProperty(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
