package keyhold_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/keyhold/keyhold/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestPropertyIsolationBetweenLandlords(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	base := api.NewClient(baseURL)

	lana, _ := registerAndLogin(t, base, "lana", "lana@example.com", "a strong passphrase", "landlord")
	rita, _ := registerAndLogin(t, base, "rita", "rita@example.com", "a strong passphrase", "landlord")

	lanaFlat := createProperty(t, lana, "Lana Flat")
	createProperty(t, rita, "Rita Flat")

	// Each landlord only lists their own portfolio.
	lanaProperties, err := lana.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, lanaProperties, 1)
	require.Equal(t, "Lana Flat", lanaProperties[0].Name)

	// And cannot reach into someone else's.
	_, err = rita.GetProperty(ctx, lanaFlat.ID)
	requireAPIError(t, err, http.StatusForbidden, "forbidden")

	_, err = rita.UpdateProperty(ctx, lanaFlat.ID, api.PropertyRequest{
		Name:         "Hijacked",
		AddressLine1: "1 High Street",
		City:         "Leeds",
		Postcode:     "LS1 1AA",
		PropertyType: "flat",
	})
	requireAPIError(t, err, http.StatusForbidden, "forbidden")

	err = rita.DeleteProperty(ctx, lanaFlat.ID)
	requireAPIError(t, err, http.StatusForbidden, "forbidden")
}

func TestPropertyDocuments(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	base := api.NewClient(baseURL)

	landlord, _ := registerAndLogin(t, base, "lana", "lana@example.com", "a strong passphrase", "landlord")
	property := createProperty(t, landlord, "Sunny Flat")

	doc, err := landlord.AddDocument(ctx, property.ID, api.DocumentRequest{
		Name:     "Tenancy Agreement",
		Filename: "agreement.pdf",
		FileType: "application/pdf",
		FileSize: 240_000,
	})
	require.NoError(t, err)

	docs, err := landlord.ListDocuments(ctx, property.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, doc.ID, docs[0].ID)

	require.NoError(t, landlord.DeleteDocument(ctx, doc.ID))

	err = landlord.DeleteDocument(ctx, doc.ID)
	requireAPIError(t, err, http.StatusNotFound, "not_found")
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	base := api.NewClient(baseURL)

	_, err := base.ListProperties(context.Background())
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
