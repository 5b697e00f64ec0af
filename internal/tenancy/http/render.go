package http

import (
	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/pkg/api"
)

func renderUser(u domain.User) api.User {
	return api.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func renderUsers(users []domain.User) []api.User {
	out := make([]api.User, 0, len(users))
	for _, u := range users {
		out = append(out, renderUser(u))
	}
	return out
}

func renderProperty(p domain.Property) api.Property {
	return api.Property{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		City:         p.City,
		County:       p.County,
		Postcode:     p.Postcode,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func renderProperties(properties []domain.Property) []api.Property {
	out := make([]api.Property, 0, len(properties))
	for _, p := range properties {
		out = append(out, renderProperty(p))
	}
	return out
}

func renderPropertySummary(s domain.PropertySummary) api.PropertySummary {
	return api.PropertySummary{
		ID:           s.ID,
		Name:         s.Name,
		PropertyType: s.PropertyType,
		AddressLine1: s.AddressLine1,
		City:         s.City,
	}
}

// renderInvitation includes the acceptance link only while the invitation is
// still pending.
func renderInvitation(inv domain.Invitation, link string) api.Invitation {
	out := api.Invitation{
		ID:         inv.ID,
		Email:      inv.Email,
		PropertyID: inv.PropertyID,
		Status:     string(inv.Status),
		ExpiresAt:  inv.ExpiresAt,
		CreatedAt:  inv.CreatedAt,
	}
	if inv.Status == domain.InvitationPending {
		out.InviteLink = link
	}
	return out
}

func renderTenants(tenants []service.Tenant) []api.Tenant {
	out := make([]api.Tenant, 0, len(tenants))
	for _, tn := range tenants {
		out = append(out, api.Tenant{
			UserID:   tn.User.ID,
			Username: tn.User.Username,
			Email:    tn.User.Email,
			JoinedAt: tn.Membership.CreatedAt,
		})
	}
	return out
}

func renderDocument(d domain.Document) api.Document {
	return api.Document{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		Name:       d.Name,
		Filename:   d.Filename,
		FileType:   d.FileType,
		FileSize:   d.FileSize,
		CreatedAt:  d.CreatedAt,
	}
}

func renderDocuments(docs []domain.Document) []api.Document {
	out := make([]api.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, renderDocument(d))
	}
	return out
}
