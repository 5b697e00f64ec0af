package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/store"
)

const invitationColumns = `id, token, email, property_id, invited_by, invited_user_id, status, expires_at, created_at, updated_at`

type invitationsRepo struct {
	q querier
}

func (r *invitationsRepo) scanInvitation(row interface{ Scan(...any) error }) (domain.Invitation, error) {
	var (
		inv         domain.Invitation
		invitedUser sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.Token, &inv.Email, &inv.PropertyID, &inv.InvitedByID,
		&invitedUser, &inv.Status, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.InvitedUserID = mapNullString(invitedUser)
	return inv, nil
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return r.scanInvitation(row)
}

func (r *invitationsRepo) GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token = ?`, token)
	return r.scanInvitation(row)
}

func (r *invitationsRepo) ListInvitationsByProperty(ctx context.Context, propertyID string) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE property_id = ? ORDER BY created_at DESC`,
		propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := r.scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invitations (id, token, email, property_id, invited_by, invited_user_id, status, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Token, inv.Email, inv.PropertyID, inv.InvitedByID,
		mapStringNull(inv.InvitedUserID), inv.Status, inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt)
	return mapConstraint(err)
}

// MarkInvitationAccepted transitions a pending invitation to accepted and
// records the accepting user. The status guard in the WHERE clause makes a
// concurrent double-accept lose with ErrNotFound instead of overwriting.
func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, invitationID, invitedUserID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invitations
		 SET status = ?, invited_user_id = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		domain.InvitationAccepted, invitedUserID, time.Now().UTC(),
		invitationID, domain.InvitationPending)
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

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM invitations WHERE id = ?`, id)
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

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM invitations WHERE status = ? AND expires_at < ?`,
		domain.InvitationPending, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
