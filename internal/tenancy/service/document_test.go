package service

import (
	"context"
	"testing"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/stretchr/testify/require"
)

func seedDocumentSetup(t *testing.T) (*DocumentService, domain.User, domain.User, domain.User, domain.Property) {
	t.Helper()

	st := newTestStore(t)
	svc := &DocumentService{Store: st}

	lana := seedUser(t, st, "lana", "lana@example.com", domain.RoleLandlord)
	rita := seedUser(t, st, "rita", "rita@example.com", domain.RoleLandlord)
	tess := seedUser(t, st, "tess", "tess@example.com", domain.RoleTenant)
	property := seedProperty(t, st, lana.ID, "Sunny Flat")
	seedMembership(t, st, tess.ID, property.ID, domain.MembershipTenant)

	return svc, lana, rita, tess, property
}

func TestAddAndListDocuments(t *testing.T) {
	ctx := context.Background()
	svc, lana, rita, tess, property := seedDocumentSetup(t)

	in := DocumentInput{
		Name:     "Tenancy Agreement",
		Filename: "agreement.pdf",
		FileType: "application/pdf",
		FileSize: 240_000,
	}

	doc, err := svc.AddDocument(ctx, lana.ID, property.ID, in)
	require.NoError(t, err)
	require.Equal(t, property.ID, doc.PropertyID)

	t.Run("tenant member can list", func(t *testing.T) {
		docs, err := svc.ListDocuments(ctx, tess.ID, property.ID)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		require.Equal(t, doc.ID, docs[0].ID)
	})

	t.Run("tenant cannot add", func(t *testing.T) {
		_, err := svc.AddDocument(ctx, tess.ID, property.ID, in)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("outsider cannot list", func(t *testing.T) {
		_, err := svc.ListDocuments(ctx, rita.ID, property.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("metadata is validated", func(t *testing.T) {
		_, err := svc.AddDocument(ctx, lana.ID, property.ID, DocumentInput{Name: "x"})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()
	svc, lana, rita, tess, property := seedDocumentSetup(t)

	doc, err := svc.AddDocument(ctx, lana.ID, property.ID, DocumentInput{
		Name:     "Inventory",
		Filename: "inventory.pdf",
		FileType: "application/pdf",
		FileSize: 80_000,
	})
	require.NoError(t, err)

	// Authorization resolves through the owning property.
	require.ErrorIs(t, svc.DeleteDocument(ctx, tess.ID, doc.ID), ErrForbidden)
	require.ErrorIs(t, svc.DeleteDocument(ctx, rita.ID, doc.ID), ErrForbidden)

	require.NoError(t, svc.DeleteDocument(ctx, lana.ID, doc.ID))
	require.ErrorIs(t, svc.DeleteDocument(ctx, lana.ID, doc.ID), ErrNotFound)
}

func TestShareDocument(t *testing.T) {
	ctx := context.Background()
	svc, lana, rita, tess, property := seedDocumentSetup(t)

	doc, err := svc.AddDocument(ctx, lana.ID, property.ID, DocumentInput{
		Name:     "Gas Certificate",
		Filename: "gas.pdf",
		FileType: "application/pdf",
		FileSize: 50_000,
	})
	require.NoError(t, err)

	t.Run("owner shares with members", func(t *testing.T) {
		require.NoError(t, svc.ShareDocument(ctx, lana.ID, doc.ID, []string{tess.ID}))
	})

	t.Run("every target must be a member", func(t *testing.T) {
		err := svc.ShareDocument(ctx, lana.ID, doc.ID, []string{tess.ID, rita.ID})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("tenant cannot share", func(t *testing.T) {
		require.ErrorIs(t, svc.ShareDocument(ctx, tess.ID, doc.ID, []string{tess.ID}), ErrForbidden)
	})

	t.Run("empty target list", func(t *testing.T) {
		require.ErrorIs(t, svc.ShareDocument(ctx, lana.ID, doc.ID, nil), ErrValidation)
	})
}
