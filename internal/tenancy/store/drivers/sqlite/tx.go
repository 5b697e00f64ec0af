package sqlite

import (
	"database/sql"

	"github.com/keyhold/keyhold/internal/tenancy/store"
)

// txStore exposes the same repositories scoped to a single transaction.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.Users             { return &usersRepo{q: t.tx} }
func (t *txStore) Properties() store.Properties   { return &propertiesRepo{q: t.tx} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{q: t.tx} }
func (t *txStore) Invitations() store.Invitations { return &invitationsRepo{q: t.tx} }
func (t *txStore) Documents() store.Documents     { return &documentsRepo{q: t.tx} }
