package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/store"
)

const membershipColumns = `id, user_id, property_id, role, created_at`

type membershipsRepo struct {
	q querier
}

func (r *membershipsRepo) scanMembership(row interface{ Scan(...any) error }) (domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.ID, &m.UserID, &m.PropertyID, &m.Role, &m.CreatedAt)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) GetMembership(ctx context.Context, userID, propertyID string) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = ? AND property_id = ?`,
		userID, propertyID)
	return r.scanMembership(row)
}

func (r *membershipsRepo) collect(rows *sql.Rows) ([]domain.Membership, error) {
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		m, err := r.scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *membershipsRepo) ListMembershipsByProperty(ctx context.Context, propertyID string) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE property_id = ? ORDER BY created_at`,
		propertyID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *membershipsRepo) ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = ? ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO memberships (id, user_id, property_id, role, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.PropertyID, m.Role, m.CreatedAt)
	return mapConstraint(err)
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, userID, propertyID string, role domain.MembershipRole) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM memberships WHERE user_id = ? AND property_id = ? AND role = ?`,
		userID, propertyID, role)
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
